package metrics

import (
	"go-datasync/internal/api"
	"go-datasync/internal/config"
	"go-datasync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MetricsApi struct {
	controller *MetricsController
	config     *config.Config
}

func NewMetricsApi(controller *MetricsController, config *config.Config) api.Route {
	return &MetricsApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all metrics routes
func (h *MetricsApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Get("/api/dashboard/overview", auth, h.controller.Overview)

	group := app.Group("/api/analysis", auth)
	group.Get("/lag-stats", h.controller.LagStats)
	group.Get("/success-rate", h.controller.SuccessRate)
	group.Get("/offset-comparison", h.controller.OffsetComparison)
	group.Get("/timezone-stats", h.controller.TimezoneStats)
}
