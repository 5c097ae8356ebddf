package registration

import "fmt"

// Error codes surfaced to handlers.
const (
	CodeProfileIncomplete = "profileIncomplete"
	CodeNotFound          = "notFound"
	CodeConflict          = "conflict"
	CodeCapacityFull      = "capacityFull"
	CodeInvalidRequest    = "invalidRequest"
	CodeNumberExhausted   = "numberExhausted"
)

// RegError is a caller-facing registration error.
type RegError struct {
	Code    string
	Message string
}

func (e *RegError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &RegError{Code: code, Message: msg}
}
