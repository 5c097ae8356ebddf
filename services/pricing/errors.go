package pricing

import "fmt"

// Error codes reported by selection validation.
const (
	CodeInvalidRole      = "invalidRole"
	CodeInvalidPhase     = "invalidPhase"
	CodeInvalidSelection = "invalidSelection"
	CodeOfferUnavailable = "offerUnavailable"
	CodeInvalidCoupon    = "invalidCoupon"
)

// PricingError is a caller-facing validation error. Handlers map it to a
// client error; it never indicates a server fault.
type PricingError struct {
	Code    string
	Message string
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, msg string) error {
	return &PricingError{Code: code, Message: msg}
}
