package middleware

import (
	"context"

	common_models "grn-console/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware keeps the caller's X-Request-ID or mints one, and puts it on the context
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Locals(common_models.RequestIDKey, id)
		c.SetUserContext(context.WithValue(c.UserContext(), common_models.RequestIDKey, id))
		return c.Next()
	}
}

// RequestID returns the id assigned by RequestIDMiddleware
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(common_models.RequestIDKey).(string)
	return id
}
