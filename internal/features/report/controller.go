package report

import (
	"errors"
	"fmt"

	common_models "grn-console/internal/common/models"
	"grn-console/internal/features/audit"
	"grn-console/internal/features/grn"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var contentTypes = map[string]string{
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatCSV:  "text/csv",
}

type ReportController struct {
	ReportService ReportService
	AuditService  audit.AuditService
	log           *zap.Logger
}

func NewReportController(reportService ReportService, auditService audit.AuditService, log *zap.Logger) *ReportController {
	return &ReportController{
		ReportService: reportService,
		AuditService:  auditService,
		log:           log.Named("report"),
	}
}

// ExportApprovals godoc
// @Summary      Export approval records
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        role    query  string  false  "store, admin or gm; empty exports every record"
// @Param        view    query  string  false  "pending or history (default pending)"
// @Param        format  query  string  false  "xlsx or csv (default xlsx)"
// @Success      200  {file}    file
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/reports/grn-approvals [get]
func (ctrl *ReportController) ExportApprovals(c *fiber.Ctx) error {
	req := ExportRequest{
		Role:   common_models.Role(c.Query("role")),
		View:   grn.View(c.Query("view", string(grn.ViewPending))),
		Format: c.Query("format", FormatXLSX),
	}

	data, filename, err := ctrl.ReportService.ExportApprovals(c.UserContext(), req)
	if err != nil {
		return ctrl.fail(c, err)
	}

	if err := ctrl.AuditService.LogChange(c.UserContext(), common_models.AuditActionReport, "grn_approvals", filename, map[string]common_models.Change{
		"role": {New: req.Role},
		"view": {New: req.View},
	}); err != nil {
		ctrl.log.Error("Failed to write audit log", zap.Error(err))
	}

	c.Set("Content-Type", contentTypes[req.Format])
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}

func (ctrl *ReportController) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrUnsupportedFormat) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fiber.Map{"code": grn.KindInvalidInput, "message": err.Error(), "retryable": false},
		})
	}

	var ae *grn.ApprovalError
	if errors.As(err, &ae) {
		return c.Status(grn.StatusFor(ae.Kind)).JSON(fiber.Map{
			"success": false,
			"error":   fiber.Map{"code": ae.Kind, "message": ae.Message, "retryable": ae.Retryable()},
		})
	}

	ctrl.log.Error("Export failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   fiber.Map{"code": "EXPORT_FAILED", "message": err.Error(), "retryable": false},
	})
}
