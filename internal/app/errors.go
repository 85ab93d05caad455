package app

type PlanErrorCode string

const (
	PlanErrInvalidProfile PlanErrorCode = "INVALID_PROFILE"
	PlanErrInvalidProgram PlanErrorCode = "INVALID_PROGRAM"
	PlanErrNotFound       PlanErrorCode = "NOT_FOUND"
	PlanErrPersistence    PlanErrorCode = "PERSISTENCE"
	PlanErrCanceled       PlanErrorCode = "CANCELED"
)

// PlanError is returned by the use cases for failures a caller can act on.
// Err keeps the underlying cause for errors.Is.
type PlanError struct {
	Code    PlanErrorCode
	Message string
	Err     error
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *PlanError) Unwrap() error { return e.Err }
