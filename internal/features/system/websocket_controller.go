package system

import (
	"go-datasync/internal/features/sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// WebSocketController streams live sync operation events to dashboard
// clients. The stream is one-way; inbound frames are ignored except to
// detect disconnects.
type WebSocketController struct {
	Events *sync.Broadcaster
	Logger *zap.Logger
}

func NewWebSocketController(events *sync.Broadcaster, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{Events: events, Logger: logger}
}

func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	events := h.Events.Subscribe()
	defer h.Events.Unsubscribe(events)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := c.WriteJSON(ev); err != nil {
				h.Logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-closed:
			return
		}
	}
}
