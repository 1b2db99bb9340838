package erp

import (
	"grn-console/internal/common/api"
	common_models "grn-console/internal/common/models"
	"grn-console/internal/config"
	"grn-console/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CandidateApi struct {
	controller *CandidateController
	config     *config.Config
}

func NewCandidateApi(controller *CandidateController, config *config.Config) api.Route {
	return &CandidateApi{
		controller: controller,
		config:     config,
	}
}

func (h *CandidateApi) Setup(app *fiber.App) {
	candidates := app.Group("/api/store-grn/candidates",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequireRole(common_models.RoleStore))

	candidates.Get("/", h.controller.ListCandidates)
	candidates.Get("/pending", h.controller.PendingToSend)
	candidates.Post("/refresh", h.controller.Refresh)
}
