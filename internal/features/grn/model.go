package grn

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flag field names, shared by the JSON payloads, Mongo documents and Postgres columns
const (
	FieldSendedBill      = "sended_bill"
	FieldApprovedByAdmin = "approved_by_admin"
	FieldApprovedByGM    = "approved_by_gm"
	FieldCloseBill       = "close_bill"
)

// ApprovalRecord is the approval state of one GRN bill, keyed by GRNNo
type ApprovalRecord struct {
	GRNNo           string          `json:"grn_no"`
	PlannedDate     string          `json:"planned_date"`
	GRNDate         string          `json:"grn_date"`
	PartyName       string          `json:"party_name"`
	PartyBillNo     string          `json:"party_bill_no"`
	PartyBillAmount decimal.Decimal `json:"party_bill_amount"`
	SendedBill      bool            `json:"sended_bill"`
	ApprovedByAdmin bool            `json:"approved_by_admin"`
	ApprovedByGM    bool            `json:"approved_by_gm"`
	CloseBill       bool            `json:"close_bill"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Flag returns the value of a stage flag by field name
func (r *ApprovalRecord) Flag(field string) (value bool, ok bool) {
	switch field {
	case FieldSendedBill:
		return r.SendedBill, true
	case FieldApprovedByAdmin:
		return r.ApprovedByAdmin, true
	case FieldApprovedByGM:
		return r.ApprovedByGM, true
	case FieldCloseBill:
		return r.CloseBill, true
	}
	return false, false
}

func (r *ApprovalRecord) setFlag(field string, v bool) bool {
	switch field {
	case FieldSendedBill:
		r.SendedBill = v
	case FieldApprovedByAdmin:
		r.ApprovedByAdmin = v
	case FieldApprovedByGM:
		r.ApprovedByGM = v
	case FieldCloseBill:
		r.CloseBill = v
	default:
		return false
	}
	return true
}

// Flags maps stage flag field names to values
type Flags map[string]bool

// Matches reports whether every flag in f holds on the record
func (f Flags) Matches(r *ApprovalRecord) bool {
	for field, want := range f {
		got, ok := r.Flag(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// BillDetails are the immutable fields captured when a bill is sent
type BillDetails struct {
	PlannedDate     string          `json:"planned_date"`
	GRNNo           string          `json:"grn_no"`
	GRNDate         string          `json:"grn_date"`
	PartyName       string          `json:"party_name"`
	PartyBillNo     string          `json:"party_bill_no"`
	PartyBillAmount decimal.Decimal `json:"party_bill_amount"`
}

func (d BillDetails) newRecord(now time.Time) *ApprovalRecord {
	return &ApprovalRecord{
		GRNNo:           d.GRNNo,
		PlannedDate:     d.PlannedDate,
		GRNDate:         d.GRNDate,
		PartyName:       d.PartyName,
		PartyBillNo:     d.PartyBillNo,
		PartyBillAmount: d.PartyBillAmount,
		SendedBill:      true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
