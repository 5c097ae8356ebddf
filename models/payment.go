package models

import "time"

// Payment row status. A row transitions out of CREATED exactly once.
const (
	PaymentCreated = "CREATED"
	PaymentSuccess = "SUCCESS"
	PaymentFailed  = "FAILED"
)

// Payment purpose.
const (
	PaymentTypeRegistration  = "REGISTRATION"
	PaymentTypeAccommodation = "ACCOMMODATION"
)

// Payment is one payment attempt against a registration or an
// accommodation booking. The set of SUCCESS rows for a reference is the
// authoritative ledger for how much has been paid.
type Payment struct {
	ID               string    `bson:"id" json:"id"`
	UserID           string    `bson:"user_id" json:"userId"`
	RefID            string    `bson:"ref_id" json:"refId"` // registration or accommodation booking id
	PaymentType      string    `bson:"payment_type" json:"paymentType"`
	Amount           int       `bson:"amount" json:"amount"` // whole rupees
	Currency         string    `bson:"currency" json:"currency"`
	Status           string    `bson:"status" json:"status"`
	GatewayOrderID   string    `bson:"gateway_order_id" json:"gatewayOrderId"`
	GatewayPaymentID string    `bson:"gateway_payment_id,omitempty" json:"gatewayPaymentId,omitempty"`
	GatewaySignature string    `bson:"gateway_signature,omitempty" json:"-"`
	FailureReason    string    `bson:"failure_reason,omitempty" json:"failureReason,omitempty"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updatedAt"`
}
