package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	common_models "grn-console/internal/common/models"
	"grn-console/internal/features/grn"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func seededService(t *testing.T) *ReportServiceImpl {
	t.Helper()
	approvals := grn.NewApprovalService(grn.NewMemoryApprovalRepository())
	ctx := context.Background()
	for _, b := range []struct{ no, amount string }{{"G1", "9999999999999999.99"}, {"G2", "1234.5"}} {
		no := b.no
		_, err := approvals.SendBill(ctx, grn.BillDetails{
			GRNNo:           no,
			PartyName:       "Acme Metals",
			PartyBillNo:     "INV-" + no,
			PartyBillAmount: decimal.RequireFromString(b.amount),
		})
		if err != nil {
			t.Fatalf("SendBill(%s) failed: %v", no, err)
		}
	}
	if _, err := approvals.ApproveByAdmin(ctx, "G2"); err != nil {
		t.Fatalf("ApproveByAdmin failed: %v", err)
	}

	return &ReportServiceImpl{
		Approvals: approvals,
		Now:       func() time.Time { return time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC) },
	}
}

func TestExportApprovalsExcel(t *testing.T) {
	svc := seededService(t)

	data, name, err := svc.ExportApprovals(context.Background(), ExportRequest{Role: common_models.RoleAdmin, View: grn.ViewPending})
	if err != nil {
		t.Fatalf("ExportApprovals failed: %v", err)
	}
	if name != "grn-approvals-admin-pending-20260601-0830.xlsx" {
		t.Errorf("filename = %q", name)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if rows[0][0] != "GRN No" || rows[1][0] != "G1" || rows[1][6] != "SENT" {
		t.Errorf("unexpected rows %v", rows)
	}

	// Amounts are written as exact numeric text, not through float64
	amount, err := f.GetCellValue(sheetName, "F2", excelize.Options{RawCellValue: true})
	if err != nil || amount != "9999999999999999.99" {
		t.Errorf("amount cell = %q, %v", amount, err)
	}
	if typ, _ := f.GetCellType(sheetName, "F2"); typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
		t.Errorf("amount cell stored as text")
	}
}

func TestExportApprovalsCSV(t *testing.T) {
	svc := seededService(t)

	data, name, err := svc.ExportApprovals(context.Background(), ExportRequest{Format: FormatCSV})
	if err != nil {
		t.Fatalf("ExportApprovals failed: %v", err)
	}
	if !strings.HasSuffix(name, ".csv") {
		t.Errorf("filename = %q", name)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("csv read failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2", len(records))
	}
	if records[2][5] != "1234.50" || records[2][6] != "ADMIN_APPROVED" {
		t.Errorf("unexpected row %v", records[2])
	}
}

func TestExportApprovalsRejectsUnknownFormat(t *testing.T) {
	svc := seededService(t)
	_, _, err := svc.ExportApprovals(context.Background(), ExportRequest{Format: "pdf"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}

	_, _, err = svc.ExportApprovals(context.Background(), ExportRequest{Role: "clerk", View: grn.ViewPending})
	if grn.KindOf(err) != grn.KindInvalidInput {
		t.Errorf("unknown role error = %v", err)
	}
}
