package controller

import (
	"net/url"

	"tobacco-catalog-be/internal/dto"
	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/pkg/serverutils"
	"tobacco-catalog-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ICatalogController is a read-only view of the catalog and its audit trail.
// All writes go through the conversation.
type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	ListTobaccos(ctx *fiber.Ctx) error
	GetTobacco(ctx *fiber.Ctx) error
	ListEvents(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
	auditService   service.IAuditService
}

func NewCatalogController(catalogService service.ICatalogService, auditService service.IAuditService) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
		auditService:   auditService,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("tobaccos", c.ListTobaccos)
	h.Get("tobaccos/:name", c.GetTobacco)
	h.Get("events", c.ListEvents)
}

func (c *catalogController) ListTobaccos(ctx *fiber.Ctx) error {
	tobaccos, err := c.catalogService.List(ctx.UserContext())
	if err != nil {
		return err
	}

	res := make([]*dto.TobaccoResponse, 0, len(tobaccos))
	for _, t := range tobaccos {
		res = append(res, toTobaccoResponse(t))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list tobaccos", res))
}

func (c *catalogController) GetTobacco(ctx *fiber.Ctx) error {
	name, err := url.PathUnescape(ctx.Params("name"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	tobacco, err := c.catalogService.GetByName(ctx.UserContext(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get tobacco", toTobaccoResponse(tobacco)))
}

func (c *catalogController) ListEvents(ctx *fiber.Ctx) error {
	filter := dto.CatalogEventFilter{Page: 1, Limit: 20}
	if err := ctx.QueryParser(&filter); err != nil {
		return fiber.ErrBadRequest
	}

	if err := serverutils.ValidateRequest(filter); err != nil {
		return err
	}

	res, err := c.auditService.History(ctx.UserContext(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list catalog events", res))
}

func toTobaccoResponse(t *entity.Tobacco) *dto.TobaccoResponse {
	return &dto.TobaccoResponse{
		Id:             t.Id,
		Name:           t.Name,
		Taste:          t.Taste,
		Molasses:       t.Molasses,
		SmokeTime:      t.SmokeTime,
		HeatResistance: t.HeatResistance,
		Comment:        t.Comment,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
