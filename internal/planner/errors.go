package planner

import "fmt"

// ErrorKind classifies the recoverable failures of a planning run.
type ErrorKind string

const (
	KindUnparsableDeadline  ErrorKind = "UNPARSABLE_DEADLINE"
	KindInvalidRolloverDate ErrorKind = "INVALID_ROLLOVER_DATE"
	KindGenerationFailure   ErrorKind = "GENERATION_FAILURE"
)

// PlanningError carries the kind of failure plus the detail that ends up in
// degraded task text. None of these kinds abort a run.
type PlanningError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *PlanningError) Error() string {
	msg := string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PlanningError) Unwrap() error { return e.Err }

// Is matches any PlanningError of the same kind, so callers can compare
// against the Err* sentinels with errors.Is.
func (e *PlanningError) Is(target error) bool {
	t, ok := target.(*PlanningError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnparsableDeadline  = &PlanningError{Kind: KindUnparsableDeadline}
	ErrInvalidRolloverDate = &PlanningError{Kind: KindInvalidRolloverDate}
	ErrGenerationFailure   = &PlanningError{Kind: KindGenerationFailure}
)

// GenerationFailure wraps a collaborator error as a GenerationFailure.
func GenerationFailure(err error) *PlanningError {
	return &PlanningError{Kind: KindGenerationFailure, Err: err}
}

func unparsable(raw string, err error) *PlanningError {
	return &PlanningError{Kind: KindUnparsableDeadline, Detail: fmt.Sprintf("%q", raw), Err: err}
}
