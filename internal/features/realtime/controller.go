package realtime

import (
	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	Hub *Hub
	log *zap.Logger
}

func NewWebSocketController(hub *Hub, log *zap.Logger) *WebSocketController {
	return &WebSocketController{Hub: hub, log: log}
}

// HandleWebSocket streams hub events to one console until either side closes
func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	id, events := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(id)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			// Clients only send pings; any read error means the socket is gone
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := c.WriteJSON(event); err != nil {
				h.log.Debug("websocket write failed", zap.String("subscriber", id), zap.Error(err))
				return
			}
		}
	}
}
