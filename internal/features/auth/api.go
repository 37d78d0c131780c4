package auth

import (
	"go-datasync/internal/api"
	"go-datasync/internal/config"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) api.Route {
	return &AuthApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all auth-related routes
func (h *AuthApi) Setup(app *fiber.App) {
	app.Post("/api/auth/register", h.controller.Register)
	app.Post("/api/auth/login", h.controller.Login)
}
