package facility

import (
	"go-datasync/internal/api"
	"go-datasync/internal/config"
	"go-datasync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FacilityApi struct {
	controller *FacilityController
	config     *config.Config
}

func NewFacilityApi(controller *FacilityController, config *config.Config) api.Route {
	return &FacilityApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all facility routes
func (h *FacilityApi) Setup(app *fiber.App) {
	app.Get("/api/timezones", h.controller.ListTimezones)
	app.Get("/api/global-facility-options", h.controller.GlobalOptions)

	group := app.Group("/api/facilities", middleware.AuthMiddleware(h.config.SkipAuth))
	group.Post("/", h.controller.CreateFacility)
	group.Get("/", h.controller.ListFacilities)
	group.Get("/:id", h.controller.GetFacility)
	group.Put("/:id", h.controller.UpdateFacility)
	group.Delete("/:id", h.controller.DeactivateFacility)
}
