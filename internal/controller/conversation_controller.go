package controller

import (
	"tobacco-catalog-be/internal/dto"
	"tobacco-catalog-be/internal/pkg/serverutils"
	"tobacco-catalog-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IConversationController is the HTTP gateway to the conversation core. It
// carries the same events as the Telegram handler.
type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Message(ctx *fiber.Ctx) error
	Selection(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
}

func NewConversationController(conversationService service.IConversationService) IConversationController {
	return &conversationController{
		conversationService: conversationService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation/v1")
	h.Post("message", c.Message)
	h.Post("selection", c.Selection)
}

func (c *conversationController) Message(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.HandleText(ctx.UserContext(), req.UserId, req.Text)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success handle message", res))
}

func (c *conversationController) Selection(ctx *fiber.Ctx) error {
	var req dto.SelectOptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.conversationService.HandleSelection(ctx.UserContext(), req.UserId, req.Token)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success handle selection", res))
}
