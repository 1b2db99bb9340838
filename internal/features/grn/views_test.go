package grn

import (
	"testing"

	common_models "grn-console/internal/common/models"
)

func TestInView(t *testing.T) {
	tests := []struct {
		stage   Stage
		role    common_models.Role
		pending bool
		history bool
	}{
		{StageSent, common_models.RoleAdmin, true, false},
		{StageAdminApproved, common_models.RoleAdmin, false, true},
		{StageClosed, common_models.RoleAdmin, false, true},
		{StageSent, common_models.RoleGM, false, false},
		{StageAdminApproved, common_models.RoleGM, true, false},
		{StageGMApproved, common_models.RoleGM, false, true},
		{StageAdminApproved, common_models.RoleStore, false, false},
		{StageGMApproved, common_models.RoleStore, true, false},
		{StageClosed, common_models.RoleStore, false, true},
	}

	for _, tt := range tests {
		rec := recordAt(tt.stage)
		if got := InView(rec, tt.role, ViewPending); got != tt.pending {
			t.Errorf("%s %s pending = %v, want %v", tt.role, tt.stage, got, tt.pending)
		}
		if got := InView(rec, tt.role, ViewHistory); got != tt.history {
			t.Errorf("%s %s history = %v, want %v", tt.role, tt.stage, got, tt.history)
		}
	}
}

func TestProjectKeepsOrder(t *testing.T) {
	a, b, c := recordAt(StageSent), recordAt(StageAdminApproved), recordAt(StageSent)
	a.GRNNo, b.GRNNo, c.GRNNo = "A", "B", "C"

	got := Project([]ApprovalRecord{*a, *b, *c}, common_models.RoleAdmin, ViewPending)
	if len(got) != 2 || got[0].GRNNo != "A" || got[1].GRNNo != "C" {
		t.Errorf("Project() = %+v", got)
	}

	if got := Project(nil, common_models.Role("clerk"), ViewPending); len(got) != 0 {
		t.Errorf("unknown role projected %d records", len(got))
	}
}
