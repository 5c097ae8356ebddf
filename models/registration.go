package models

import "time"

// Registration payment status, derived from the payment ledger.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
)

// Registration is the priced package a user selected and its payment state.
// There is at most one Registration per user.
type Registration struct {
	ID                 string         `bson:"id" json:"id"`
	UserID             string         `bson:"user_id" json:"userId"`
	RegistrationNumber string         `bson:"registration_number" json:"registrationNumber"`
	Role               Role           `bson:"role" json:"role"`
	BookingPhase       Phase          `bson:"booking_phase" json:"bookingPhase"`
	Selections         Selections     `bson:"selections" json:"selections"`
	Breakdown          PriceBreakdown `bson:"breakdown" json:"breakdown"`
	TotalAmount        int            `bson:"total_amount" json:"totalAmount"`
	TotalPaid          int            `bson:"total_paid" json:"totalPaid"`
	PaymentStatus      string         `bson:"payment_status" json:"paymentStatus"`

	// Best-effort side-effect bookkeeping (confirmation mail, badge issue).
	LastNotifyError string     `bson:"last_notify_error,omitempty" json:"lastNotifyError,omitempty"`
	LastNotifyAt    *time.Time `bson:"last_notify_at,omitempty" json:"lastNotifyAt,omitempty"`

	// Version guards read-modify-write cycles on the aggregate.
	Version   int       `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DerivePaymentStatus maps a ledger total against the owed amount.
// PAID iff everything owed has been received; there is deliberately no
// FAILED registration state, failed attempts live on the Payment rows.
func DerivePaymentStatus(totalPaid, totalAmount int) string {
	if totalAmount > 0 && totalPaid >= totalAmount {
		return PaymentStatusPaid
	}
	return PaymentStatusPending
}
