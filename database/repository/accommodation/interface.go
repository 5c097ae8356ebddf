package accommodationRepo

import (
	"go.mongodb.org/mongo-driver/bson"

	"confreg/models"
)

// AccommodationRepository defines data access for accommodation bookings.
type AccommodationRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Accommodation, error)
	// GetByUserID retrieves all bookings for a user.
	GetByUserID(userID string) ([]models.Accommodation, error)
	// Create inserts a new booking.
	Create(a *models.Accommodation) error
	// SetFields applies a targeted $set on a booking document.
	SetFields(id string, fields bson.M) error
	// Delete removes a booking by its ID.
	Delete(id string) error
}
