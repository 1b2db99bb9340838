package erp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"grn-console/internal/features/grn"

	"github.com/shopspring/decimal"
)

// Origin column names as the ERP exposes them
const (
	ColPlannedDate = "PLANNEDDATE"
	ColVoucherNo   = "VRNO"
	ColVoucherDate = "VRDATE"
	ColPartyName   = "PARTYNAME"
	ColPartyBillNo = "PARTYBILLNO"
	ColPartyAmount = "PARTYBILLAMT"
)

var originColumns = []string{ColPlannedDate, ColVoucherNo, ColVoucherDate, ColPartyName, ColPartyBillNo, ColPartyAmount}

// Candidate is a store GRN that can be sent for bill approval
type Candidate struct {
	PlannedDate     string          `json:"planned_date"`
	GRNNo           string          `json:"grn_no"`
	GRNDate         string          `json:"grn_date"`
	PartyName       string          `json:"party_name"`
	PartyBillNo     string          `json:"party_bill_no"`
	PartyBillAmount decimal.Decimal `json:"party_bill_amount"`
}

// Bill converts the candidate into the details captured by a send
func (c Candidate) Bill() grn.BillDetails {
	return grn.BillDetails{
		PlannedDate:     c.PlannedDate,
		GRNNo:           c.GRNNo,
		GRNDate:         c.GRNDate,
		PartyName:       c.PartyName,
		PartyBillNo:     c.PartyBillNo,
		PartyBillAmount: c.PartyBillAmount,
	}
}

var (
	ErrMissingVoucherNo = errors.New("row has no VRNO")
	ErrBadAmount        = errors.New("row has a malformed PARTYBILLAMT")
)

// MapRow turns one free-form ERP row into a Candidate. Keys match in any case.
func MapRow(row map[string]interface{}) (Candidate, error) {
	fields := make(map[string]interface{}, len(row))
	for k, v := range row {
		fields[strings.ToUpper(strings.TrimSpace(k))] = v
	}

	c := Candidate{
		PlannedDate: text(fields[ColPlannedDate]),
		GRNNo:       strings.TrimSpace(text(fields[ColVoucherNo])),
		GRNDate:     text(fields[ColVoucherDate]),
		PartyName:   text(fields[ColPartyName]),
		PartyBillNo: text(fields[ColPartyBillNo]),
	}
	if c.GRNNo == "" {
		return Candidate{}, ErrMissingVoucherNo
	}

	amount, err := toDecimal(fields[ColPartyAmount])
	if err != nil || amount.IsNegative() {
		return Candidate{}, fmt.Errorf("%w for %s", ErrBadAmount, c.GRNNo)
	}
	c.PartyBillAmount = amount
	return c, nil
}

// MapRows maps every row, dropping and counting the ones that fail
func MapRows(rows []map[string]interface{}) ([]Candidate, int) {
	out := make([]Candidate, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		c, err := MapRow(row)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, c)
	}
	return out, skipped
}

func text(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, ErrBadAmount
	case decimal.Decimal:
		return val, nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case float32:
		return decimal.NewFromFloat32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case []byte:
		return decimal.NewFromString(strings.TrimSpace(string(val)))
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if s == "" {
			return decimal.Zero, ErrBadAmount
		}
		return decimal.NewFromString(s)
	default:
		return decimal.NewFromString(fmt.Sprint(val))
	}
}
