package erp

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestScriptFilter(t *testing.T) {
	f, err := NewScriptFilter(`
text := import("text")
keep := row.amount > 0 && !text.has_prefix(row.grn_no, "TMP")
`)
	if err != nil {
		t.Fatalf("NewScriptFilter failed: %v", err)
	}

	tests := []struct {
		c    Candidate
		want bool
	}{
		{Candidate{GRNNo: "G1", PartyBillAmount: decimal.NewFromInt(10)}, true},
		{Candidate{GRNNo: "G2", PartyBillAmount: decimal.Zero}, false},
		{Candidate{GRNNo: "TMP-3", PartyBillAmount: decimal.NewFromInt(10)}, false},
	}
	for _, tt := range tests {
		got, err := f.Keep(context.Background(), tt.c)
		if err != nil {
			t.Fatalf("Keep(%s) failed: %v", tt.c.GRNNo, err)
		}
		if got != tt.want {
			t.Errorf("Keep(%s) = %v, want %v", tt.c.GRNNo, got, tt.want)
		}
	}
}

func TestScriptFilterValidation(t *testing.T) {
	if f, err := NewScriptFilter(""); f != nil || err != nil {
		t.Errorf("empty script = %v, %v", f, err)
	}
	if _, err := NewScriptFilter(`allow := true`); err == nil {
		t.Error("script without keep should be rejected")
	}
	if _, err := NewScriptFilter(`keep := (`); err == nil {
		t.Error("syntax error should be rejected")
	}
}
