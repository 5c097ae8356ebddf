package paymentRepo

import "confreg/models"

// PaymentRepository defines data access for the payment ledger.
type PaymentRepository interface {
	// Create inserts a new payment row in CREATED state.
	Create(p *models.Payment) error
	// GetByOrderID retrieves a payment by gateway order id; nil when absent.
	GetByOrderID(orderID string) (*models.Payment, error)
	// MarkSuccess transitions a payment to SUCCESS exactly once. Returns
	// false when the row was already SUCCESS (idempotent replay).
	MarkSuccess(orderID, gatewayPaymentID, signature string) (bool, error)
	// MarkFailed transitions a CREATED payment to FAILED with a reason.
	MarkFailed(orderID, gatewayPaymentID, reason string) error
	// SumSuccessByRef sums the amounts of all SUCCESS payments for a
	// reference (registration or accommodation booking).
	SumSuccessByRef(refID, paymentType string) (int, error)
	// ListByRef retrieves all payment rows for a reference.
	ListByRef(refID string) ([]models.Payment, error)
	// DeleteByRef removes all payment rows for a reference (cascade).
	DeleteByRef(refID string) error
}
