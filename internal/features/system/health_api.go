package system

import (
	"context"
	"time"

	"grn-console/internal/common/api"
	"grn-console/internal/config"
	"grn-console/internal/features/grn"

	"github.com/gofiber/fiber/v2"
)

// Pinger is implemented by backends that can report reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe names one dependency checked by the readiness route
type Probe struct {
	Name   string
	Pinger Pinger
}

type HealthApi struct {
	config *config.Config
	probes []Probe
}

// NewHealthApi checks the approval store when it can be pinged
func NewHealthApi(cfg *config.Config, store grn.ApprovalRepository) api.Route {
	h := &HealthApi{config: cfg}
	if p, ok := any(store).(Pinger); ok {
		h.probes = append(h.probes, Probe{Name: "approval_store", Pinger: p})
	}
	return h
}

// Setup registers health check routes
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.HealthCheck)
	app.Get("/health/ready", h.Ready)
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Check if the server is up
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Router       /health [get]
func (h *HealthApi) HealthCheck(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// Ready godoc
// @Summary      Readiness
// @Description  Pings the approval store
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health/ready [get]
func (h *HealthApi) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	checks := fiber.Map{}
	status := fiber.StatusOK
	for _, p := range h.probes {
		if err := p.Pinger.Ping(ctx); err != nil {
			checks[p.Name] = err.Error()
			status = fiber.StatusServiceUnavailable
			continue
		}
		checks[p.Name] = "ok"
	}

	return c.Status(status).JSON(fiber.Map{
		"success": status == fiber.StatusOK,
		"data": fiber.Map{
			"store_backend": h.config.StoreBackend,
			"environment":   h.config.Environment,
			"checks":        checks,
		},
	})
}
