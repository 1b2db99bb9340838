package report

import (
	"grn-console/internal/common/api"
	common_models "grn-console/internal/common/models"
	"grn-console/internal/config"
	"grn-console/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
	Config           *config.Config
}

func NewReportApi(reportController *ReportController, config *config.Config) api.Route {
	return &ReportApi{
		ReportController: reportController,
		Config:           config,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/grn-approvals", middleware.RequireRole(common_models.AllRoles...), api.ReportController.ExportApprovals)
}
