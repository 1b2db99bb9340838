package grn

import (
	"grn-console/internal/common/api"
	common_models "grn-console/internal/common/models"
	"grn-console/internal/config"
	"grn-console/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ApprovalApi struct {
	controller *ApprovalController
	config     *config.Config
}

func NewApprovalApi(controller *ApprovalController, config *config.Config) api.Route {
	return &ApprovalApi{
		controller: controller,
		config:     config,
	}
}

func (h *ApprovalApi) Setup(app *fiber.App) {
	approvals := app.Group("/api/grn-approvals", middleware.AuthMiddleware(h.config.SkipAuth))
	anyRole := middleware.RequireRole(common_models.AllRoles...)

	approvals.Get("/", anyRole, h.controller.ListRecords)
	approvals.Get("/views/:role/:view", anyRole, h.controller.ListView)

	// One role per gate
	approvals.Post("/send-bill", middleware.RequireRole(common_models.RoleStore), h.controller.SendBill)
	approvals.Patch("/approve-admin/:grn_no", middleware.RequireRole(common_models.RoleAdmin), h.controller.ApproveByAdmin)
	approvals.Patch("/approve-gm/:grn_no", middleware.RequireRole(common_models.RoleGM), h.controller.ApproveByGM)
	approvals.Patch("/close-bill/:grn_no", middleware.RequireRole(common_models.RoleStore), h.controller.CloseBill)

	approvals.Get("/:grn_no", anyRole, h.controller.GetRecord)
}
