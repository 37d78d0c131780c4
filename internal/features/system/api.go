package system

import (
	"go-datasync/internal/api"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type SystemApi struct {
	health *HealthController
	ws     *WebSocketController
}

func NewSystemApi(health *HealthController, ws *WebSocketController) api.Route {
	return &SystemApi{
		health: health,
		ws:     ws,
	}
}

// Setup registers all system routes
func (h *SystemApi) Setup(app *fiber.App) {
	app.Get("/api/health", h.health.Health)
	app.Get("/api/ws", websocket.New(h.ws.HandleWebSocket))
}
