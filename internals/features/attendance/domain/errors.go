package domain

import "errors"

// Domain failures the engine reports to callers. Controllers map these
// onto the response envelope; nothing here is ever retried internally.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidState = errors.New("operation not valid in the current state")
	ErrForbidden    = errors.New("actor is not allowed to perform this operation")
	ErrConflict     = errors.New("a conflicting record already exists")
)

// OutOfWindowError rejects a check-in attempt outside the allowed
// window. Reason distinguishes "too early" from "too late".
type OutOfWindowError struct {
	Reason string
}

func (e *OutOfWindowError) Error() string {
	return "check-in window closed: " + e.Reason
}

const (
	ReasonTooEarly = "too early"
	ReasonTooLate  = "too late"
)

func TooEarly() *OutOfWindowError { return &OutOfWindowError{Reason: ReasonTooEarly} }
func TooLate() *OutOfWindowError  { return &OutOfWindowError{Reason: ReasonTooLate} }

// AsOutOfWindow unwraps err into an OutOfWindowError if it is one.
func AsOutOfWindow(err error) (*OutOfWindowError, bool) {
	var oow *OutOfWindowError
	if errors.As(err, &oow) {
		return oow, true
	}
	return nil, false
}
