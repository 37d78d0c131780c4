package target

import (
	"go-datasync/internal/api"
	"go-datasync/internal/config"
	"go-datasync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TargetApi struct {
	controller *TargetController
	config     *config.Config
}

func NewTargetApi(controller *TargetController, config *config.Config) api.Route {
	return &TargetApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all sync target routes
func (h *TargetApi) Setup(app *fiber.App) {
	group := app.Group("/api/targets", middleware.AuthMiddleware(h.config.SkipAuth))
	group.Post("/", h.controller.CreateTarget)
	group.Get("/", h.controller.ListTargets)
	group.Get("/:id", h.controller.GetTarget)
	group.Put("/:id", h.controller.UpdateTarget)
	group.Delete("/:id", h.controller.DeactivateTarget)
}
