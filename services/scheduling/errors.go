package scheduling

import "fmt"

// Validation reason codes surfaced to callers.
const (
	ReasonInvalidDate   = "invalid_date"
	ReasonInvalidTime   = "invalid_time"
	ReasonInvalidStatus = "invalid_status"
	ReasonCapacityFull  = "capacity_full"
)

// ValidationError reports a malformed or unacceptable request field. It is a
// caller error and is never retried automatically.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(code, msg string) error {
	return &ValidationError{Code: code, Message: msg}
}

// CapacityConflictError reports that the targeted slot or day is already at
// its configured limit. The limit is carried so the caller can explain why;
// the caller may retry against a different slot.
type CapacityConflictError struct {
	Scope string // "slot" or "day"
	Limit int
}

func (e *CapacityConflictError) Error() string {
	return fmt.Sprintf("%s: %s capacity limit of %d reached", ReasonCapacityFull, e.Scope, e.Limit)
}
