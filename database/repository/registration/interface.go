package registrationRepo

import (
	"go.mongodb.org/mongo-driver/bson"

	"confreg/models"
)

// RegistrationRepository defines data access for registrations.
type RegistrationRepository interface {
	// GetByID retrieves a registration by its unique ID.
	GetByID(id string) (*models.Registration, error)
	// GetByUserID retrieves the user's one registration; nil when absent.
	GetByUserID(userID string) (*models.Registration, error)
	// GetByNumber retrieves a registration by its registration number; nil when absent.
	GetByNumber(number string) (*models.Registration, error)
	// GetAll retrieves all registrations.
	GetAll() ([]models.Registration, error)
	// Create inserts a new registration.
	Create(reg *models.Registration) error
	// Update writes back a modified registration, guarded by its version.
	Update(reg *models.Registration) error
	// SetFields applies a targeted $set on a registration document.
	SetFields(id string, fields bson.M) error
	// Delete removes a registration by its ID.
	Delete(id string) error
	// CountCourseSelections counts registrations holding the certified-course add-on.
	CountCourseSelections() (int, error)
	// MaxNumberSuffix returns the highest numeric suffix among registration
	// numbers carrying the given prefix, or 0 when none exist.
	MaxNumberSuffix(prefix string) (int, error)
}

// ErrVersionConflict reports a lost read-modify-write race on a registration.
var ErrVersionConflict = errVersionConflict{}

type errVersionConflict struct{}

func (errVersionConflict) Error() string { return "registration was modified concurrently" }
