package system

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"grn-console/internal/config"
	"grn-console/internal/features/grn"

	"github.com/gofiber/fiber/v2"
)

type pingingStore struct {
	grn.ApprovalRepository
	err error
}

func (s pingingStore) Ping(ctx context.Context) error { return s.err }

func TestReadiness(t *testing.T) {
	tests := []struct {
		name  string
		store grn.ApprovalRepository
		want  int
	}{
		{"no probe", grn.NewMemoryApprovalRepository(), fiber.StatusOK},
		{"store up", pingingStore{}, fiber.StatusOK},
		{"store down", pingingStore{err: errors.New("no reachable servers")}, fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			NewHealthApi(&config.Config{StoreBackend: config.StoreMemory}, tt.store).Setup(app)

			resp, err := app.Test(httptest.NewRequest("GET", "/health/ready", nil), -1)
			if err != nil {
				t.Fatalf("app.Test failed: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}
