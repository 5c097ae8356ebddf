package accommodation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	accommodationRepo "confreg/database/repository/accommodation"
	"confreg/config"
	"confreg/models"
)

// BookingRequest is an accommodation booking submission.
type BookingRequest struct {
	Hotel    string `json:"hotel"`
	RoomType string `json:"roomType"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// AccError is a caller-facing accommodation error.
type AccError struct {
	Code    string
	Message string
}

func (e *AccError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AccommodationService manages hotel bookings.
type AccommodationService interface {
	// Book creates a booking priced off the room-rate table.
	Book(userID string, req BookingRequest) (*models.Accommodation, error)
	// GetByUserID lists a user's bookings.
	GetByUserID(userID string) ([]models.Accommodation, error)
}

// DefaultAccommodationService implements AccommodationService.
type DefaultAccommodationService struct {
	Repo  accommodationRepo.AccommodationRepository
	Table func() *config.PricingTable
	Now   func() time.Time
}

// NewAccommodationService wires a service over the given repository.
func NewAccommodationService(repo accommodationRepo.AccommodationRepository) *DefaultAccommodationService {
	return &DefaultAccommodationService{
		Repo:  repo,
		Table: func() *config.PricingTable { return config.Pricing },
		Now:   time.Now,
	}
}

const dateLayout = "2006-01-02"

// Book creates a booking. The amount is nights times the configured rate.
func (s *DefaultAccommodationService) Book(userID string, req BookingRequest) (*models.Accommodation, error) {
	rates, ok := s.Table().RoomRates[req.Hotel]
	if !ok {
		return nil, &AccError{Code: "invalidRequest", Message: "unknown hotel"}
	}
	rate, ok := rates[req.RoomType]
	if !ok {
		return nil, &AccError{Code: "invalidRequest", Message: "unknown room type"}
	}

	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return nil, &AccError{Code: "invalidRequest", Message: "check-in date must be YYYY-MM-DD"}
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return nil, &AccError{Code: "invalidRequest", Message: "check-out date must be YYYY-MM-DD"}
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return nil, &AccError{Code: "invalidRequest", Message: "check-out must be after check-in"}
	}

	booking := &models.Accommodation{
		ID:            uuid.New().String(),
		UserID:        userID,
		Hotel:         req.Hotel,
		RoomType:      req.RoomType,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Nights:        nights,
		Amount:        nights * rate,
		TotalPaid:     0,
		PaymentStatus: models.DerivePaymentStatus(0, nights*rate),
	}
	if err := s.Repo.Create(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByUserID lists a user's bookings.
func (s *DefaultAccommodationService) GetByUserID(userID string) ([]models.Accommodation, error) {
	return s.Repo.GetByUserID(userID)
}
