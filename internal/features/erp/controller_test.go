package erp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	common_models "grn-console/internal/common/models"
	"grn-console/internal/config"
	"grn-console/internal/features/grn"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MockAuditService struct {
	Actions []common_models.AuditAction
}

func (m *MockAuditService) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *MockAuditService) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

// StoreDownRepo fails every read of the approval store
type StoreDownRepo struct {
	grn.ApprovalRepository
}

func (r *StoreDownRepo) List(ctx context.Context) ([]grn.ApprovalRecord, error) {
	return nil, errors.New("connection refused")
}

type BrokenSource struct{}

func (BrokenSource) Candidates(ctx context.Context) ([]Candidate, error) {
	return nil, errors.New("erp host unreachable")
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code      string `json:"code"`
		Retryable bool   `json:"retryable"`
	} `json:"error"`
}

func newCandidateTestApi(source Source, repo grn.ApprovalRepository) (*fiber.App, *MockAuditService) {
	audit := &MockAuditService{}
	svc := &CandidateServiceImpl{
		Source:    source,
		Approvals: grn.NewApprovalService(repo),
		Now:       func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) },
	}
	app := fiber.New()
	NewCandidateApi(NewCandidateController(svc, audit, zap.NewNop()), &config.Config{SkipAuth: true}).Setup(app)
	return app, audit
}

func doCandidates(t *testing.T, app *fiber.App, method, path string) (int, errorBody) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, body
}

func TestStoreFailureKeepsItsKind(t *testing.T) {
	app, audit := newCandidateTestApi(&StaticSource{Items: []Candidate{candidate("G1", 10)}}, &StoreDownRepo{})

	for _, tc := range []struct{ method, path string }{
		{fiber.MethodGet, "/api/store-grn/candidates/pending"},
		{fiber.MethodPost, "/api/store-grn/candidates/refresh"},
	} {
		status, body := doCandidates(t, app, tc.method, tc.path)
		if status != fiber.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", tc.path, status)
		}
		if body.Success || body.Error.Code != string(grn.KindStoreUnavailable) || !body.Error.Retryable {
			t.Errorf("%s: body = %+v", tc.path, body)
		}
	}
	if len(audit.Actions) != 0 {
		t.Errorf("failed refresh was audited: %v", audit.Actions)
	}
}

func TestSourceFailureIsBadGateway(t *testing.T) {
	app, _ := newCandidateTestApi(BrokenSource{}, grn.NewMemoryApprovalRepository())

	for _, path := range []string{"/api/store-grn/candidates/", "/api/store-grn/candidates/pending"} {
		status, body := doCandidates(t, app, fiber.MethodGet, path)
		if status != fiber.StatusBadGateway || body.Error.Code != "ERP_UNAVAILABLE" {
			t.Errorf("%s: status = %d body = %+v", path, status, body)
		}
	}
}

func TestRefreshIsAudited(t *testing.T) {
	app, audit := newCandidateTestApi(&StaticSource{Items: []Candidate{candidate("G1", 10)}}, grn.NewMemoryApprovalRepository())

	status, body := doCandidates(t, app, fiber.MethodPost, "/api/store-grn/candidates/refresh")
	if status != fiber.StatusOK || !body.Success {
		t.Fatalf("refresh: status = %d body = %+v", status, body)
	}
	if len(audit.Actions) != 1 || audit.Actions[0] != common_models.AuditActionSync {
		t.Errorf("audit actions = %v", audit.Actions)
	}
}
