package grn

import "fmt"

// Stage is a position in the linear approval lifecycle
type Stage int

const (
	StageNone Stage = iota
	StageSent
	StageAdminApproved
	StageGMApproved
	StageClosed
)

var stageNames = [...]string{"NONE", "SENT", "ADMIN_APPROVED", "GM_APPROVED", "CLOSED"}

// stageFlags[s] is the flag that marks stage s as satisfied
var stageFlags = [...]string{
	StageSent:          FieldSendedBill,
	StageAdminApproved: FieldApprovedByAdmin,
	StageGMApproved:    FieldApprovedByGM,
	StageClosed:        FieldCloseBill,
}

func (s Stage) String() string {
	if s < StageNone || s > StageClosed {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Transition is a requested move into the next stage
type Transition string

const (
	TransitionSend         Transition = "send"
	TransitionAdminApprove Transition = "admin_approve"
	TransitionGMApprove    Transition = "gm_approve"
	TransitionClose        Transition = "close"
)

// Transitions in pipeline order
var Transitions = []Transition{TransitionSend, TransitionAdminApprove, TransitionGMApprove, TransitionClose}

// Target is the stage a successful transition lands in
func (t Transition) Target() Stage {
	switch t {
	case TransitionSend:
		return StageSent
	case TransitionAdminApprove:
		return StageAdminApproved
	case TransitionGMApprove:
		return StageGMApproved
	case TransitionClose:
		return StageClosed
	}
	return StageNone
}

// Valid reports whether t is a known transition
func (t Transition) Valid() bool {
	return t.Target() != StageNone
}

// Field is the flag the transition flips to true
func (t Transition) Field() string {
	return stageFlags[t.Target()]
}

// Guard is the flag state that must still hold when the transition commits:
// predecessor set and own flag clear.
func (t Transition) Guard() Flags {
	target := t.Target()
	guard := Flags{stageFlags[target]: false}
	if target > StageSent {
		guard[stageFlags[target-1]] = true
	}
	return guard
}

// Violation names why a transition is not permitted; empty means permitted
type Violation string

const (
	ViolationNone              Violation = ""
	ViolationAlreadyAtOrPast   Violation = "ALREADY_AT_OR_PAST_STAGE"
	ViolationPredecessorNotMet Violation = "PREDECESSOR_NOT_SATISFIED"
)

// StageOf returns the highest stage whose whole prefix chain is satisfied.
// A nil record has not been sent.
func StageOf(r *ApprovalRecord) Stage {
	if r == nil {
		return StageNone
	}
	stage := StageNone
	for s := StageSent; s <= StageClosed; s++ {
		if v, _ := r.Flag(stageFlags[s]); !v {
			break
		}
		stage = s
	}
	return stage
}

// Evaluate decides whether t may be applied to r. It has no side effects.
func Evaluate(r *ApprovalRecord, t Transition) Violation {
	target := t.Target()
	if target == StageNone {
		return ViolationPredecessorNotMet
	}
	if r != nil {
		if done, _ := r.Flag(stageFlags[target]); done {
			return ViolationAlreadyAtOrPast
		}
	}
	if StageOf(r) < target-1 {
		return ViolationPredecessorNotMet
	}
	return ViolationNone
}
