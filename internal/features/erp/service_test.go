package erp

import (
	"context"
	"testing"
	"time"

	"grn-console/internal/features/grn"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type KeepFilter func(c Candidate) bool

func (f KeepFilter) Keep(ctx context.Context, c Candidate) (bool, error) {
	return f(c), nil
}

func newCandidateTestService(t *testing.T, items ...Candidate) (*CandidateServiceImpl, grn.ApprovalService) {
	t.Helper()
	approvals := grn.NewApprovalService(grn.NewMemoryApprovalRepository())
	svc := &CandidateServiceImpl{
		Source:    &StaticSource{Items: items},
		Approvals: approvals,
		Now:       func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) },
	}
	return svc, approvals
}

func candidate(grnNo string, amount int64) Candidate {
	return Candidate{GRNNo: grnNo, PartyName: "Acme", PartyBillAmount: decimal.NewFromInt(amount)}
}

func TestPendingToSendExcludesSentBills(t *testing.T) {
	svc, approvals := newCandidateTestService(t, candidate("G1", 10), candidate("G2", 20), candidate("G3", 30))
	ctx := context.Background()

	if _, err := approvals.SendBill(ctx, candidate("G2", 20).Bill()); err != nil {
		t.Fatalf("SendBill failed: %v", err)
	}

	pending, err := svc.PendingToSend(ctx)
	if err != nil {
		t.Fatalf("PendingToSend failed: %v", err)
	}
	if len(pending) != 2 || pending[0].GRNNo != "G1" || pending[1].GRNNo != "G3" {
		t.Errorf("pending = %+v", pending)
	}
}

func TestFilterAppliesToEveryList(t *testing.T) {
	svc, _ := newCandidateTestService(t, candidate("G1", 10), candidate("G2", 0))
	svc.Filter = KeepFilter(func(c Candidate) bool { return c.PartyBillAmount.IsPositive() })

	items, _ := svc.ListCandidates(context.Background())
	if len(items) != 1 || items[0].GRNNo != "G1" {
		t.Errorf("candidates = %+v", items)
	}

	result, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if result.Candidates != 1 || result.Pending != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	cache, _ := setupTestCache(t)
	origin := &CountingSource{Items: []Candidate{candidate("G1", 10)}}
	svc, _ := newCandidateTestService(t)
	svc.Source = NewCachedSource(origin, cache, time.Hour, zap.NewNop())

	ctx := context.Background()
	_, _ = svc.ListCandidates(ctx)
	_, _ = svc.Refresh(ctx)
	_, _ = svc.ListCandidates(ctx)

	if origin.Calls != 2 {
		t.Errorf("origin read %d times, want 2", origin.Calls)
	}
}
