package user

import "fmt"

// Error codes surfaced to handlers.
const (
	CodeInvalidInput       = "invalidInput"
	CodeDuplicate          = "duplicate"
	CodeInvalidCredentials = "invalidCredentials"
	CodeNotFound           = "notFound"
	CodeImmutableField     = "immutableField"
)

// UserError is a caller-facing account error.
type UserError struct {
	Code    string
	Message string
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &UserError{Code: code, Message: msg}
}
