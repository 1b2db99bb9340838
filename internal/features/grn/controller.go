package grn

import (
	"context"
	"errors"
	"net/url"

	common_models "grn-console/internal/common/models"
	"grn-console/internal/features/audit"
	"grn-console/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// auditModule is the audit log module name for approval records
const auditModule = "grn_approvals"

// EventRecordUpdated carries the server-confirmed record after a committed transition
const EventRecordUpdated = "grn.updated"

// RecordPublisher pushes committed records to connected views
type RecordPublisher interface {
	Publish(eventType string, payload any)
}

type ApprovalController struct {
	Service      ApprovalService
	AuditService audit.AuditService
	Publisher    RecordPublisher
	log          *zap.Logger
}

func NewApprovalController(service ApprovalService, auditService audit.AuditService, publisher RecordPublisher, log *zap.Logger) *ApprovalController {
	return &ApprovalController{
		Service:      service,
		AuditService: auditService,
		Publisher:    publisher,
		log:          log.Named("grn"),
	}
}

// ListRecords godoc
// @Summary      List approval records
// @Tags         grn-approvals
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /api/grn-approvals [get]
func (ctrl *ApprovalController) ListRecords(c *fiber.Ctx) error {
	records, err := ctrl.Service.ListRecords(c.UserContext())
	if err != nil {
		return ctrl.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": records})
}

// GetRecord godoc
// @Summary      Get one approval record
// @Tags         grn-approvals
// @Produce      json
// @Param        grn_no  path  string  true  "GRN number"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/grn-approvals/{grn_no} [get]
func (ctrl *ApprovalController) GetRecord(c *fiber.Ctx) error {
	grnNo, err := grnParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	rec, err := ctrl.Service.GetRecord(c.UserContext(), grnNo)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rec})
}

// ListView godoc
// @Summary      Pending or history list for a role
// @Tags         grn-approvals
// @Produce      json
// @Param        role  path  string  true  "store, admin or gm"
// @Param        view  path  string  true  "pending or history"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/grn-approvals/views/{role}/{view} [get]
func (ctrl *ApprovalController) ListView(c *fiber.Ctx) error {
	role := common_models.Role(c.Params("role"))
	view := View(c.Params("view"))
	records, err := ctrl.Service.ListView(c.UserContext(), role, view)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": records})
}

// SendBill godoc
// @Summary      Send a GRN bill for approval
// @Tags         grn-approvals
// @Accept       json
// @Produce      json
// @Param        bill  body  BillDetails  true  "Bill details"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/grn-approvals/send-bill [post]
func (ctrl *ApprovalController) SendBill(c *fiber.Ctx) error {
	var input BillDetails
	if err := c.BodyParser(&input); err != nil {
		return ctrl.fail(c, invalidInput("", "invalid request body"))
	}

	rec, err := ctrl.Service.SendBill(c.UserContext(), input)
	if err != nil {
		return ctrl.fail(c, err)
	}

	ctrl.committed(c, TransitionSend, rec)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": rec})
}

// ApproveByAdmin godoc
// @Summary      Admin approval
// @Tags         grn-approvals
// @Produce      json
// @Param        grn_no  path  string  true  "GRN number"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/grn-approvals/approve-admin/{grn_no} [patch]
func (ctrl *ApprovalController) ApproveByAdmin(c *fiber.Ctx) error {
	return ctrl.transition(c, TransitionAdminApprove, ctrl.Service.ApproveByAdmin)
}

// ApproveByGM godoc
// @Summary      GM approval
// @Tags         grn-approvals
// @Produce      json
// @Param        grn_no  path  string  true  "GRN number"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/grn-approvals/approve-gm/{grn_no} [patch]
func (ctrl *ApprovalController) ApproveByGM(c *fiber.Ctx) error {
	return ctrl.transition(c, TransitionGMApprove, ctrl.Service.ApproveByGM)
}

// CloseBill godoc
// @Summary      Close an approved bill
// @Tags         grn-approvals
// @Produce      json
// @Param        grn_no  path  string  true  "GRN number"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/grn-approvals/close-bill/{grn_no} [patch]
func (ctrl *ApprovalController) CloseBill(c *fiber.Ctx) error {
	return ctrl.transition(c, TransitionClose, ctrl.Service.CloseBill)
}

func (ctrl *ApprovalController) transition(c *fiber.Ctx, t Transition, apply func(context.Context, string) (*ApprovalRecord, error)) error {
	grnNo, err := grnParam(c)
	if err != nil {
		return ctrl.fail(c, err)
	}
	rec, err := apply(c.UserContext(), grnNo)
	if err != nil {
		return ctrl.fail(c, err)
	}
	ctrl.committed(c, t, rec)
	return c.JSON(fiber.Map{"success": true, "data": rec})
}

// committed runs the side effects of a stored transition. Their failures are logged, not returned:
// the record is already committed.
func (ctrl *ApprovalController) committed(c *fiber.Ctx, t Transition, rec *ApprovalRecord) {
	ctx := c.UserContext()
	actor := "anonymous"
	if claims, ok := middleware.ClaimsFrom(c); ok {
		actor = claims.UserID
	}

	ctrl.log.Info("GRN stage committed",
		zap.String("grn_no", rec.GRNNo),
		zap.String("transition", string(t)),
		zap.Stringer("stage", StageOf(rec)),
		zap.String("actor", actor),
		zap.String("request_id", middleware.RequestID(c)),
	)

	action := common_models.AuditActionApproval
	switch t {
	case TransitionSend:
		action = common_models.AuditActionCreate
	case TransitionClose:
		action = common_models.AuditActionClose
	}
	changes := map[string]common_models.Change{
		t.Field(): {Old: false, New: true},
	}
	if t == TransitionSend {
		changes["party_bill_amount"] = common_models.Change{New: rec.PartyBillAmount.String()}
	}
	if err := ctrl.AuditService.LogChange(ctx, action, auditModule, rec.GRNNo, changes); err != nil {
		ctrl.log.Error("Failed to write audit log", zap.String("grn_no", rec.GRNNo), zap.Error(err))
	}

	if ctrl.Publisher != nil {
		ctrl.Publisher.Publish(EventRecordUpdated, rec)
	}
}

// grnParam decodes the grn_no path segment; ERP voucher numbers may contain an escaped slash
func grnParam(c *fiber.Ctx) (string, error) {
	raw := c.Params("grn_no")
	grnNo, err := url.PathUnescape(raw)
	if err != nil {
		return "", invalidInput(raw, "malformed grn_no")
	}
	return grnNo, nil
}

func (ctrl *ApprovalController) fail(c *fiber.Ctx, err error) error {
	var ae *ApprovalError
	if !errors.As(err, &ae) {
		ae = storeError("", "unexpected failure", err)
	}

	status := StatusFor(ae.Kind)
	if status >= fiber.StatusInternalServerError {
		ctrl.log.Error("GRN approval store failure",
			zap.String("grn_no", ae.GRNNo),
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err))
	}

	body := fiber.Map{
		"success": false,
		"error": fiber.Map{
			"code":      ae.Kind,
			"message":   ae.Message,
			"retryable": ae.Retryable(),
		},
	}
	if ae.Record != nil {
		body["data"] = ae.Record
	}
	return c.Status(status).JSON(body)
}

// StatusFor maps an error kind onto an HTTP status
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindInvalidInput:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindPreconditionViolation, KindAlreadyAtOrPastStage:
		return fiber.StatusConflict
	default:
		return fiber.StatusServiceUnavailable
	}
}
