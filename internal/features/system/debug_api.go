package system

import (
	"grn-console/internal/common/api"
	"grn-console/internal/config"
	"grn-console/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DebugApi struct {
	config *config.Config
}

func NewDebugApi(cfg *config.Config) api.Route {
	return &DebugApi{config: cfg}
}

// Setup registers debug routes
func (h *DebugApi) Setup(app *fiber.App) {
	debug := app.Group("/api/debug", middleware.AuthMiddleware(h.config.SkipAuth))
	debug.Get("/me", h.GetCurrentUser)
}

// GetCurrentUser godoc
// @Summary      Get current user info
// @Description  The user id and gate roles carried by the bearer token
// @Tags         debug
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/debug/me [get]
func (h *DebugApi) GetCurrentUser(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user_id": claims.UserID,
			"roles":   claims.Roles,
		},
	})
}
