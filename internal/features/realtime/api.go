package realtime

import (
	"grn-console/internal/common/api"
	"grn-console/internal/config"
	"grn-console/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WebSocketApi struct {
	Controller *WebSocketController
	config     *config.Config
}

func NewWebSocketApi(controller *WebSocketController, config *config.Config) api.Route {
	return &WebSocketApi{
		Controller: controller,
		config:     config,
	}
}

func (h *WebSocketApi) Setup(app *fiber.App) {
	app.Get("/api/ws", tokenFromQuery, middleware.AuthMiddleware(h.config.SkipAuth), requireUpgrade, websocket.New(h.Controller.HandleWebSocket))
}

// Browsers cannot set headers on a WebSocket handshake
func tokenFromQuery(c *fiber.Ctx) error {
	if token := c.Query("access_token"); token != "" && c.Get("Authorization") == "" {
		c.Request().Header.Set("Authorization", "Bearer "+token)
	}
	return c.Next()
}

func requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
