package registration

import (
	"go-datasync/internal/api"
	"go-datasync/internal/config"
	"go-datasync/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RegistrationApi struct {
	controller *RegistrationController
	config     *config.Config
}

func NewRegistrationApi(controller *RegistrationController, config *config.Config) api.Route {
	return &RegistrationApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the ingestion routes
func (h *RegistrationApi) Setup(app *fiber.App) {
	app.Post("/api/register-patient", h.controller.RegisterPatient)
	app.Get("/api/patients", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.ListPatients)
}
