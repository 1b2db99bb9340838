package grn

import (
	"errors"
	"fmt"
)

// Repository sentinels
var (
	ErrRecordNotFound = errors.New("approval record not found")
	ErrRecordExists   = errors.New("approval record already exists")
	ErrGuardFailed    = errors.New("approval record changed since it was read")
)

// ErrorKind classifies a failed approval operation for callers
type ErrorKind string

const (
	KindPreconditionViolation ErrorKind = "PRECONDITION_VIOLATION"
	KindAlreadyAtOrPastStage  ErrorKind = "ALREADY_AT_OR_PAST_STAGE"
	KindNotFound              ErrorKind = "NOT_FOUND"
	KindStoreUnavailable      ErrorKind = "STORE_UNAVAILABLE"
	KindInvalidInput          ErrorKind = "INVALID_INPUT"
)

// ApprovalError is returned by every ApprovalService operation that fails
type ApprovalError struct {
	Kind    ErrorKind
	GRNNo   string
	Message string
	// Record is the current stored state when the failure was a gate violation
	Record *ApprovalRecord
	Err    error
}

func (e *ApprovalError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ApprovalError) Unwrap() error {
	return e.Err
}

// Retryable is true only for transient store failures
func (e *ApprovalError) Retryable() bool {
	return e.Kind == KindStoreUnavailable
}

// KindOf extracts the ErrorKind from err, or "" when err is not an ApprovalError
func KindOf(err error) ErrorKind {
	var ae *ApprovalError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsRetryable reports whether the caller may retry the operation
func IsRetryable(err error) bool {
	var ae *ApprovalError
	return errors.As(err, &ae) && ae.Retryable()
}

func violationError(v Violation, t Transition, grnNo string, current *ApprovalRecord) *ApprovalError {
	switch v {
	case ViolationAlreadyAtOrPast:
		return &ApprovalError{
			Kind:    KindAlreadyAtOrPastStage,
			GRNNo:   grnNo,
			Message: fmt.Sprintf("%s already applied, record is at %s", t, StageOf(current)),
			Record:  current,
		}
	default:
		return &ApprovalError{
			Kind:    KindPreconditionViolation,
			GRNNo:   grnNo,
			Message: fmt.Sprintf("%s requires %s, record is at %s", t, t.Target()-1, StageOf(current)),
			Record:  current,
		}
	}
}

func notFoundError(grnNo string) *ApprovalError {
	return &ApprovalError{
		Kind:    KindNotFound,
		GRNNo:   grnNo,
		Message: fmt.Sprintf("no approval record for grn_no %q", grnNo),
		Err:     ErrRecordNotFound,
	}
}

func storeError(grnNo, op string, err error) *ApprovalError {
	return &ApprovalError{
		Kind:    KindStoreUnavailable,
		GRNNo:   grnNo,
		Message: op,
		Err:     err,
	}
}

func invalidInput(grnNo, message string) *ApprovalError {
	return &ApprovalError{
		Kind:    KindInvalidInput,
		GRNNo:   grnNo,
		Message: message,
	}
}
