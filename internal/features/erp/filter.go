package erp

import (
	"context"
	"fmt"

	"grn-console/internal/config"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Filter decides which candidates reach the store clerk
type Filter interface {
	Keep(ctx context.Context, c Candidate) (bool, error)
}

// ScriptFilter runs a Tengo script per candidate. The script reads `row` and must assign `keep`.
//
//	keep := row.party_name != "" && row.amount > 0
type ScriptFilter struct {
	compiled *tengo.Compiled
}

// NewScriptFilter compiles src once; an empty src yields a nil filter that keeps everything
func NewScriptFilter(src string) (*ScriptFilter, error) {
	if src == "" {
		return nil, nil
	}

	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap("text", "times", "math"))
	if err := script.Add("row", map[string]interface{}{}); err != nil {
		return nil, err
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter script: %w", err)
	}
	if !compiled.IsDefined("keep") {
		return nil, fmt.Errorf("filter script must assign keep")
	}
	return &ScriptFilter{compiled: compiled}, nil
}

// NewFilter provides the filter configured by ERP_FILTER_SCRIPT
func NewFilter(cfg *config.Config) (Filter, error) {
	f, err := NewScriptFilter(cfg.ERP.FilterScript)
	if err != nil || f == nil {
		return nil, err
	}
	return f, nil
}

func (f *ScriptFilter) Keep(ctx context.Context, c Candidate) (bool, error) {
	run := f.compiled.Clone()
	if err := run.Set("row", scriptRow(c)); err != nil {
		return false, err
	}
	if err := run.RunContext(ctx); err != nil {
		return false, fmt.Errorf("failed to run filter script for %s: %w", c.GRNNo, err)
	}
	return run.Get("keep").Bool(), nil
}

func scriptRow(c Candidate) map[string]interface{} {
	return map[string]interface{}{
		"planned_date":  c.PlannedDate,
		"grn_no":        c.GRNNo,
		"grn_date":      c.GRNDate,
		"party_name":    c.PartyName,
		"party_bill_no": c.PartyBillNo,
		"amount":        c.PartyBillAmount.InexactFloat64(),
		"amount_text":   c.PartyBillAmount.String(),
	}
}
