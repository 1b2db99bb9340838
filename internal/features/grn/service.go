package grn

import (
	"context"
	"errors"
	"strings"
	"time"

	common_models "grn-console/internal/common/models"

	"github.com/shopspring/decimal"
)

// Postgres stores NUMERIC(18,2); Mongo's Decimal128 holds every value in that range
const amountScale = 2

var maxAmount = decimal.New(1, 16)

// checkAmount rejects amounts a store would refuse or round
func checkAmount(amount decimal.Decimal) string {
	switch {
	case amount.IsNegative():
		return "party_bill_amount must not be negative"
	case amount.GreaterThanOrEqual(maxAmount):
		return "party_bill_amount is too large"
	case !amount.Equal(amount.Truncate(amountScale)):
		return "party_bill_amount must have at most 2 decimal places"
	}
	return ""
}

// ApprovalService is the only writer of approval records
type ApprovalService interface {
	SendBill(ctx context.Context, details BillDetails) (*ApprovalRecord, error)
	ApproveByAdmin(ctx context.Context, grnNo string) (*ApprovalRecord, error)
	ApproveByGM(ctx context.Context, grnNo string) (*ApprovalRecord, error)
	CloseBill(ctx context.Context, grnNo string) (*ApprovalRecord, error)

	GetRecord(ctx context.Context, grnNo string) (*ApprovalRecord, error)
	ListRecords(ctx context.Context) ([]ApprovalRecord, error)
	ListView(ctx context.Context, role common_models.Role, view View) ([]ApprovalRecord, error)
}

type ApprovalServiceImpl struct {
	Repo ApprovalRepository
	Now  func() time.Time
}

func NewApprovalService(repo ApprovalRepository) ApprovalService {
	return &ApprovalServiceImpl{
		Repo: repo,
		Now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *ApprovalServiceImpl) SendBill(ctx context.Context, details BillDetails) (*ApprovalRecord, error) {
	details.GRNNo = strings.TrimSpace(details.GRNNo)
	if details.GRNNo == "" {
		return nil, invalidInput("", "grn_no is required")
	}
	if msg := checkAmount(details.PartyBillAmount); msg != "" {
		return nil, invalidInput(details.GRNNo, msg)
	}

	rec := details.newRecord(s.Now())
	err := s.Repo.Create(ctx, rec)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrRecordExists) {
		return nil, storeError(details.GRNNo, "create approval record", err)
	}

	// Re-sending never overwrites the stored bill
	existing, gerr := s.Repo.Get(ctx, details.GRNNo)
	if gerr != nil {
		return nil, storeError(details.GRNNo, "load existing approval record", gerr)
	}
	return nil, violationError(ViolationAlreadyAtOrPast, TransitionSend, details.GRNNo, existing)
}

func (s *ApprovalServiceImpl) ApproveByAdmin(ctx context.Context, grnNo string) (*ApprovalRecord, error) {
	return s.advance(ctx, grnNo, TransitionAdminApprove)
}

func (s *ApprovalServiceImpl) ApproveByGM(ctx context.Context, grnNo string) (*ApprovalRecord, error) {
	return s.advance(ctx, grnNo, TransitionGMApprove)
}

func (s *ApprovalServiceImpl) CloseBill(ctx context.Context, grnNo string) (*ApprovalRecord, error) {
	return s.advance(ctx, grnNo, TransitionClose)
}

// advance evaluates the gate on a fresh read, then commits with the gate's guard.
// A lost guard is re-evaluated against the winner's state.
func (s *ApprovalServiceImpl) advance(ctx context.Context, grnNo string, t Transition) (*ApprovalRecord, error) {
	grnNo = strings.TrimSpace(grnNo)
	if grnNo == "" {
		return nil, invalidInput("", "grn_no is required")
	}

	current, err := s.get(ctx, grnNo)
	if err != nil {
		return nil, err
	}
	if v := Evaluate(current, t); v != ViolationNone {
		return nil, violationError(v, t, grnNo, current)
	}

	updated, err := s.Repo.Patch(ctx, grnNo, t.Guard(), Flags{t.Field(): true}, s.Now())
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, ErrRecordNotFound):
		return nil, notFoundError(grnNo)
	case errors.Is(err, ErrGuardFailed):
		latest, err := s.get(ctx, grnNo)
		if err != nil {
			return nil, err
		}
		v := Evaluate(latest, t)
		if v == ViolationNone {
			// flags only move forward, so a lost guard means this stage was applied by someone else
			v = ViolationAlreadyAtOrPast
		}
		return nil, violationError(v, t, grnNo, latest)
	default:
		return nil, storeError(grnNo, "patch approval record", err)
	}
}

func (s *ApprovalServiceImpl) get(ctx context.Context, grnNo string) (*ApprovalRecord, error) {
	rec, err := s.Repo.Get(ctx, grnNo)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, notFoundError(grnNo)
		}
		return nil, storeError(grnNo, "load approval record", err)
	}
	return rec, nil
}

func (s *ApprovalServiceImpl) GetRecord(ctx context.Context, grnNo string) (*ApprovalRecord, error) {
	return s.get(ctx, strings.TrimSpace(grnNo))
}

func (s *ApprovalServiceImpl) ListRecords(ctx context.Context) ([]ApprovalRecord, error) {
	records, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeError("", "list approval records", err)
	}
	return records, nil
}

func (s *ApprovalServiceImpl) ListView(ctx context.Context, role common_models.Role, view View) ([]ApprovalRecord, error) {
	if !role.Valid() {
		return nil, invalidInput("", "unknown role "+string(role))
	}
	if !view.Valid() {
		return nil, invalidInput("", "unknown view "+string(view))
	}
	records, err := s.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return Project(records, role, view), nil
}
