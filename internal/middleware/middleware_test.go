package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	common_models "grn-console/internal/common/models"
	"grn-console/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(skipAuth bool, roles ...common_models.Role) *fiber.App {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/gate", AuthMiddleware(skipAuth), RequireRole(roles...), func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c))
	})
	return app
}

func TestRequireRole(t *testing.T) {
	utils.SetSecret("middleware-test")
	app := newTestApp(false, common_models.RoleAdmin)

	adminToken, _ := utils.GenerateToken("u1", []string{"admin"}, time.Hour)
	gmToken, _ := utils.GenerateToken("u2", []string{"gm"}, time.Hour)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: fiber.StatusUnauthorized},
		{name: "bad scheme", header: "Token " + adminToken, want: fiber.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", want: fiber.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + gmToken, want: fiber.StatusForbidden},
		{name: "right role", header: "Bearer " + adminToken, want: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/gate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test failed: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestSkipAuthGrantsEveryRole(t *testing.T) {
	app := newTestApp(true, common_models.RoleGM)
	req := httptest.NewRequest("GET", "/gate", nil)
	req.Header.Set("X-Request-ID", "fixed-id")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want fixed-id", got)
	}
}
