package erp

import (
	"errors"

	common_models "grn-console/internal/common/models"
	"grn-console/internal/features/audit"
	"grn-console/internal/features/grn"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const auditModule = "store_grn"

type CandidateController struct {
	Service      CandidateService
	AuditService audit.AuditService
	log          *zap.Logger
}

func NewCandidateController(service CandidateService, auditService audit.AuditService, log *zap.Logger) *CandidateController {
	return &CandidateController{
		Service:      service,
		AuditService: auditService,
		log:          log.Named("erp"),
	}
}

// ListCandidates godoc
// @Summary      Store GRN candidates from the ERP feed
// @Tags         store-grn
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/store-grn/candidates [get]
func (ctrl *CandidateController) ListCandidates(c *fiber.Ctx) error {
	items, err := ctrl.Service.ListCandidates(c.UserContext())
	if err != nil {
		return ctrl.upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// PendingToSend godoc
// @Summary      Candidates that have not been sent for approval
// @Tags         store-grn
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /api/store-grn/candidates/pending [get]
func (ctrl *CandidateController) PendingToSend(c *fiber.Ctx) error {
	items, err := ctrl.Service.PendingToSend(c.UserContext())
	if err != nil {
		return ctrl.upstreamError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// Refresh godoc
// @Summary      Reload the ERP candidate feed
// @Tags         store-grn
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /api/store-grn/candidates/refresh [post]
func (ctrl *CandidateController) Refresh(c *fiber.Ctx) error {
	result, err := ctrl.Service.Refresh(c.UserContext())
	if err != nil {
		return ctrl.upstreamError(c, err)
	}

	if err := ctrl.AuditService.LogChange(c.UserContext(), common_models.AuditActionSync, auditModule, "", map[string]common_models.Change{
		"candidates": {New: result.Candidates},
		"pending":    {New: result.Pending},
	}); err != nil {
		ctrl.log.Error("Failed to write audit log", zap.Error(err))
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}

// upstreamError answers approval store failures with their own kind; anything else is the ERP source
func (ctrl *CandidateController) upstreamError(c *fiber.Ctx, err error) error {
	var ae *grn.ApprovalError
	if errors.As(err, &ae) {
		ctrl.log.Error("Approval store lookup failed", zap.Error(err))
		return c.Status(grn.StatusFor(ae.Kind)).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"code":      ae.Kind,
				"message":   ae.Error(),
				"retryable": ae.Retryable(),
			},
		})
	}

	ctrl.log.Error("ERP candidate feed failed", zap.Error(err))
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":      "ERP_UNAVAILABLE",
			"message":   err.Error(),
			"retryable": true,
		},
	})
}
