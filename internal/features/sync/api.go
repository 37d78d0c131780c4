package sync

import (
	"go-datasync/internal/api"
	"go-datasync/internal/config"
	"go-datasync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *SyncController
	config     *config.Config
}

func NewSyncApi(controller *SyncController, config *config.Config) api.Route {
	return &SyncApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all sync routes
func (h *SyncApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Post("/api/trigger-sync", auth, h.controller.TriggerSync)
	app.Get("/api/logs", auth, h.controller.ListLogs)
	app.Get("/api/logs/export", auth, h.controller.ExportLogs)

	group := app.Group("/api/sync", auth)
	group.Get("/operations/:id", h.controller.GetOperation)
	group.Post("/operations/:id/cancel", h.controller.CancelOperation)
}
