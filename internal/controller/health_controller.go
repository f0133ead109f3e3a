package controller

import (
	"time"

	"tobacco-catalog-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

const LivenessMessage = "Bot is running!"

// IHealthController answers the hosting platform's health checks. It never
// touches the catalog.
type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Root(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	startedAt time.Time
}

func NewHealthController() IHealthController {
	return &healthController{startedAt: time.Now()}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Root)
	r.Get("/healthz", c.Health)
}

func (c *healthController) Root(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).SendString(LivenessMessage)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{
		"uptime_seconds": int64(time.Since(c.startedAt).Seconds()),
	}))
}
