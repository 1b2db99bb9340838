package grn

import "testing"

func recordAt(stage Stage) *ApprovalRecord {
	rec := &ApprovalRecord{GRNNo: "GRN-1"}
	for s := StageSent; s <= stage; s++ {
		rec.setFlag(stageFlags[s], true)
	}
	return rec
}

func TestStageOf(t *testing.T) {
	if got := StageOf(nil); got != StageNone {
		t.Errorf("StageOf(nil) = %s, want NONE", got)
	}
	for s := StageSent; s <= StageClosed; s++ {
		if got := StageOf(recordAt(s)); got != s {
			t.Errorf("StageOf(recordAt(%s)) = %s", s, got)
		}
	}

	// a flag set without its predecessor does not count
	broken := &ApprovalRecord{SendedBill: true, ApprovedByGM: true}
	if got := StageOf(broken); got != StageSent {
		t.Errorf("StageOf(broken chain) = %s, want SENT", got)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		rec  *ApprovalRecord
		t    Transition
		want Violation
	}{
		{"send new", nil, TransitionSend, ViolationNone},
		{"send again", recordAt(StageSent), TransitionSend, ViolationAlreadyAtOrPast},
		{"admin without record", nil, TransitionAdminApprove, ViolationPredecessorNotMet},
		{"admin after send", recordAt(StageSent), TransitionAdminApprove, ViolationNone},
		{"admin twice", recordAt(StageAdminApproved), TransitionAdminApprove, ViolationAlreadyAtOrPast},
		{"admin after close", recordAt(StageClosed), TransitionAdminApprove, ViolationAlreadyAtOrPast},
		{"gm before admin", recordAt(StageSent), TransitionGMApprove, ViolationPredecessorNotMet},
		{"gm after admin", recordAt(StageAdminApproved), TransitionGMApprove, ViolationNone},
		{"close before gm", recordAt(StageAdminApproved), TransitionClose, ViolationPredecessorNotMet},
		{"close after gm", recordAt(StageGMApproved), TransitionClose, ViolationNone},
		{"close twice", recordAt(StageClosed), TransitionClose, ViolationAlreadyAtOrPast},
		{"unknown transition", recordAt(StageSent), Transition("reopen"), ViolationPredecessorNotMet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.rec, tt.t); got != tt.want {
				t.Errorf("Evaluate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluateDoesNotMutate(t *testing.T) {
	rec := recordAt(StageSent)
	before := *rec
	Evaluate(rec, TransitionAdminApprove)
	if *rec != before {
		t.Error("Evaluate changed the record")
	}
}

func TestTransitionGuard(t *testing.T) {
	send := TransitionSend.Guard()
	if len(send) != 1 || send[FieldSendedBill] {
		t.Errorf("send guard = %v", send)
	}

	gm := TransitionGMApprove.Guard()
	if len(gm) != 2 || !gm[FieldApprovedByAdmin] || gm[FieldApprovedByGM] {
		t.Errorf("gm guard = %v", gm)
	}
	if TransitionClose.Field() != FieldCloseBill {
		t.Errorf("close field = %s", TransitionClose.Field())
	}
}
