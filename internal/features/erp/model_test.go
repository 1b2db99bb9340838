package erp

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMapRowAnyKeyCase(t *testing.T) {
	row := map[string]interface{}{
		"plannedDate":  "2026-02-27",
		"vrno":         " GRN/24/001 ",
		"VRDATE":       time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		"PartyName":    []byte("Acme Metals"),
		"partybillno":  "INV-77",
		"PARTYBILLAMT": "15,250.50",
		"EXTRA":        "ignored",
	}

	c, err := MapRow(row)
	if err != nil {
		t.Fatalf("MapRow failed: %v", err)
	}
	if c.GRNNo != "GRN/24/001" || c.GRNDate != "2026-02-28" || c.PartyName != "Acme Metals" {
		t.Errorf("unexpected candidate %+v", c)
	}
	if !c.PartyBillAmount.Equal(decimal.RequireFromString("15250.5")) {
		t.Errorf("amount = %s", c.PartyBillAmount)
	}

	bill := c.Bill()
	if bill.GRNNo != c.GRNNo || bill.PlannedDate != "2026-02-27" {
		t.Errorf("Bill() = %+v", bill)
	}
}

func TestMapRowRejects(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]interface{}
		want error
	}{
		{"no voucher", map[string]interface{}{"PARTYBILLAMT": 10.0}, ErrMissingVoucherNo},
		{"blank voucher", map[string]interface{}{"VRNO": "  ", "PARTYBILLAMT": 10.0}, ErrMissingVoucherNo},
		{"no amount", map[string]interface{}{"VRNO": "G1"}, ErrBadAmount},
		{"text amount", map[string]interface{}{"VRNO": "G1", "PARTYBILLAMT": "ten"}, ErrBadAmount},
		{"negative amount", map[string]interface{}{"VRNO": "G1", "PARTYBILLAMT": int64(-5)}, ErrBadAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := MapRow(tt.row); !errors.Is(err, tt.want) {
				t.Errorf("MapRow() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMapRowsCountsSkipped(t *testing.T) {
	rows := []map[string]interface{}{
		{"VRNO": "G1", "PARTYBILLAMT": 100.25},
		{"VRNO": "", "PARTYBILLAMT": 1.0},
		{"VRNO": "G3", "PARTYBILLAMT": int64(0)},
	}
	got, skipped := MapRows(rows)
	if len(got) != 2 || skipped != 1 {
		t.Errorf("kept %d, skipped %d", len(got), skipped)
	}
}
