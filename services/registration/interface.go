package registration

import "confreg/models"

// UpsertRequest is a checkout submission.
type UpsertRequest struct {
	Selections models.Selections `json:"selections"`
	CouponCode string            `json:"couponCode,omitempty"`
}

// ManualRequest is the admin path for creating a registration with a
// preferred registration number.
type ManualRequest struct {
	UserID          string            `json:"userId"`
	Selections      models.Selections `json:"selections"`
	CouponCode      string            `json:"couponCode,omitempty"`
	PreferredNumber int               `json:"preferredNumber,omitempty"`
}

// RegistrationService manages the registration aggregate.
type RegistrationService interface {
	// Preview prices a selection set without side effects.
	Preview(roleRaw string, phase models.Phase, sel models.Selections, couponCode string) (models.PriceBreakdown, error)
	// Upsert creates or updates the caller's registration.
	Upsert(userID string, req UpsertRequest) (*models.Registration, error)
	// GetByUserID fetches the caller's registration.
	GetByUserID(userID string) (*models.Registration, error)
	// GetByID fetches a registration by its ID (admin).
	GetByID(registrationID string) (*models.Registration, error)
	// GetAll lists all registrations (admin).
	GetAll() ([]models.Registration, error)
	// CreateManual registers a user under a preferred number (admin).
	CreateManual(req ManualRequest) (*models.Registration, error)
	// CounterValue reports the allocator's current sequence.
	CounterValue() (int, error)
	// SetCounter overwrites the allocator sequence; rejected below max-used.
	SetCounter(value int) error
	// Delete removes a registration and cascades to its payment and
	// attendance rows (admin).
	Delete(registrationID string) error
}
