package payment

import "fmt"

// Error codes surfaced to handlers.
const (
	CodeNotFound          = "notFound"
	CodeAlreadyPaid       = "alreadyPaid"
	CodeSignatureMismatch = "signatureMismatch"
	CodeGatewayFailure    = "gatewayFailure"
	CodeInvalidRequest    = "invalidRequest"
)

// PayError is a caller-facing payment error.
type PayError struct {
	Code    string
	Message string
}

func (e *PayError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &PayError{Code: code, Message: msg}
}
