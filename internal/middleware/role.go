package middleware

import (
	common_models "grn-console/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole lets the request through when the user holds any of the roles
func RequireRole(roles ...common_models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   fiber.Map{"code": "UNAUTHORIZED", "message": "Unauthorized"},
			})
		}

		for _, role := range roles {
			if claims.HasRole(string(role)) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   fiber.Map{"code": "FORBIDDEN", "message": "Access denied: role not allowed at this stage"},
		})
	}
}
