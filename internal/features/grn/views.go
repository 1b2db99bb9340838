package grn

import (
	common_models "grn-console/internal/common/models"
)

// View is a read projection a role dashboard asks for
type View string

const (
	ViewPending View = "pending"
	ViewHistory View = "history"
)

func (v View) Valid() bool {
	return v == ViewPending || v == ViewHistory
}

// RoleTransition is the gate a role acts on from its pending list.
// The store clerk also sends bills, but its candidates come from the ERP feed.
func RoleTransition(role common_models.Role) (Transition, bool) {
	switch role {
	case common_models.RoleStore:
		return TransitionClose, true
	case common_models.RoleAdmin:
		return TransitionAdminApprove, true
	case common_models.RoleGM:
		return TransitionGMApprove, true
	}
	return "", false
}

// InView reports whether rec belongs in the role's pending or history list.
// Pending means the predecessor stage is met but the role's own is not;
// history means the role's own stage is met.
func InView(rec *ApprovalRecord, role common_models.Role, view View) bool {
	t, ok := RoleTransition(role)
	if !ok {
		return false
	}
	stage := StageOf(rec)
	switch view {
	case ViewPending:
		return stage == t.Target()-1
	case ViewHistory:
		return stage >= t.Target()
	}
	return false
}

// Project filters records down to one role view, keeping order
func Project(records []ApprovalRecord, role common_models.Role, view View) []ApprovalRecord {
	out := make([]ApprovalRecord, 0, len(records))
	for i := range records {
		if InView(&records[i], role, view) {
			out = append(out, records[i])
		}
	}
	return out
}
