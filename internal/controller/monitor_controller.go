package controller

import (
	"github.com/gofiber/fiber/v2"

	"support-assistant-be/internal/constant"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/internal/pkg/serverutils"
	"support-assistant-be/pkg/interaction"
)

type IMonitorController interface {
	RegisterRoutes(r fiber.Router)
	Stats(ctx *fiber.Ctx) error
	Interactions(ctx *fiber.Ctx) error
}

type monitorController struct {
	stats  *interaction.StatsAggregate
	logger logger.ILogger
}

func NewMonitorController(stats *interaction.StatsAggregate, log logger.ILogger) IMonitorController {
	return &monitorController{
		stats:  stats,
		logger: log,
	}
}

func (c *monitorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1/monitor")
	h.Use(serverutils.JwtMiddleware)
	h.Get("stats", c.Stats)
	h.Get("interactions", c.Interactions)
}

func (c *monitorController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get chatbot stats", c.stats.Snapshot()))
}

// Interactions pages through the interaction entries the consumer wrote to
// the log file, newest first.
func (c *monitorController) Interactions(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := ctx.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	entries, err := c.logger.GetLogs(constant.LogModuleMonitor, "", limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chatbot interactions", entries))
}
