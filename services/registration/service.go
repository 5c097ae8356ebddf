package registration

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"confreg/config"
	attendanceRepo "confreg/database/repository/attendance"
	counterRepo "confreg/database/repository/counter"
	paymentRepo "confreg/database/repository/payment"
	registrationRepo "confreg/database/repository/registration"
	userRepo "confreg/database/repository/user"
	"confreg/models"
	"confreg/services/pricing"
	"confreg/utils"
)

// DefaultRegistrationService implements RegistrationService.
type DefaultRegistrationService struct {
	Repo        registrationRepo.RegistrationRepository
	Users       userRepo.UserRepository
	Counters    counterRepo.CounterRepository
	Payments    paymentRepo.PaymentRepository
	Attendances attendanceRepo.AttendanceRepository
	Table       func() *config.PricingTable
	Now         func() time.Time
}

// NewRegistrationService wires a service over the given repositories.
func NewRegistrationService(
	repo registrationRepo.RegistrationRepository,
	users userRepo.UserRepository,
	counters counterRepo.CounterRepository,
	payments paymentRepo.PaymentRepository,
	attendances attendanceRepo.AttendanceRepository,
) *DefaultRegistrationService {
	return &DefaultRegistrationService{
		Repo:        repo,
		Users:       users,
		Counters:    counters,
		Payments:    payments,
		Attendances: attendances,
		Table:       func() *config.PricingTable { return config.Pricing },
		Now:         time.Now,
	}
}

// Preview prices a selection set without touching any state. An empty phase
// means "whatever phase is in effect right now".
func (s *DefaultRegistrationService) Preview(roleRaw string, phase models.Phase, sel models.Selections, couponCode string) (models.PriceBreakdown, error) {
	table := s.Table()

	role, ok := pricing.NormalizeRole(roleRaw)
	if !ok {
		return models.PriceBreakdown{}, newError(CodeInvalidRequest, "unrecognized role")
	}
	if phase == "" {
		phase = pricing.PhaseOn(table, s.Now())
	}
	if err := pricing.ValidateSelection(table, role, phase, sel); err != nil {
		return models.PriceBreakdown{}, err
	}
	return pricing.Calculate(table, role, phase, sel, couponCode)
}

// Upsert creates the user's registration or updates the existing one.
// Validation failures leave state untouched.
func (s *DefaultRegistrationService) Upsert(userID string, req UpsertRequest) (*models.Registration, error) {
	table := s.Table()
	logger := utils.GetLogger()

	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, newError(CodeNotFound, "user not found")
	}
	if !user.ProfileComplete {
		return nil, newError(CodeProfileIncomplete, "complete your profile before checkout")
	}
	role, ok := pricing.NormalizeRole(user.Role)
	if !ok {
		return nil, newError(CodeInvalidRequest, "profile has an unrecognized role")
	}

	existing, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	// Paid registrations reprice against their stored phase, never the
	// wall clock, so add-ons bought after a window closes keep the paid
	// tier. Paid add-on flags are sticky across resubmissions.
	sel := req.Selections
	phase := pricing.PhaseOn(table, s.Now())
	if existing != nil && existing.PaymentStatus == models.PaymentStatusPaid {
		phase = existing.BookingPhase
		sel = MergeSticky(existing.Selections, sel)
	}

	if err := pricing.ValidateSelection(table, role, phase, sel); err != nil {
		return nil, err
	}

	// Seat cap on the certified course. Count-then-write: not linearizable,
	// acceptable at human-paced registration volume.
	addingCourse := sel.AddAoaCourse && (existing == nil || !existing.Selections.AddAoaCourse)
	if addingCourse {
		taken, err := s.Repo.CountCourseSelections()
		if err != nil {
			return nil, err
		}
		if taken >= table.AoaCourseSeatCap {
			return nil, newError(CodeCapacityFull, "certified course seats are sold out")
		}
	}

	breakdown, err := pricing.Calculate(table, role, phase, sel, req.CouponCode)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		number, err := s.nextRegistrationNumber()
		if err != nil {
			return nil, err
		}
		reg := &models.Registration{
			ID:                 uuid.New().String(),
			UserID:             userID,
			RegistrationNumber: number,
			Role:               role,
			BookingPhase:       phase,
			Selections:         sel,
			Breakdown:          breakdown,
			TotalAmount:        breakdown.TotalAmount,
			TotalPaid:          0,
			PaymentStatus:      models.DerivePaymentStatus(0, breakdown.TotalAmount),
		}
		if err := s.Repo.Create(reg); err != nil {
			return nil, err
		}
		logger.Info("registration created",
			zap.String("registrationNumber", number),
			zap.String("userId", userID),
			zap.Int("totalAmount", reg.TotalAmount))
		return reg, nil
	}

	// Repeat submission: keep the payment history and re-derive the status
	// against the new total instead of resetting it.
	existing.Role = role
	existing.BookingPhase = phase
	existing.Selections = sel
	existing.Breakdown = breakdown
	existing.TotalAmount = breakdown.TotalAmount
	existing.PaymentStatus = models.DerivePaymentStatus(existing.TotalPaid, breakdown.TotalAmount)

	if err := s.Repo.Update(existing); err != nil {
		if errors.Is(err, registrationRepo.ErrVersionConflict) {
			return nil, newError(CodeConflict, "registration was updated concurrently, please retry")
		}
		return nil, err
	}
	return existing, nil
}

// GetByUserID fetches the caller's registration.
func (s *DefaultRegistrationService) GetByUserID(userID string) (*models.Registration, error) {
	reg, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, newError(CodeNotFound, "no registration found")
	}
	return reg, nil
}

// GetByID fetches a registration by its ID.
func (s *DefaultRegistrationService) GetByID(registrationID string) (*models.Registration, error) {
	reg, err := s.Repo.GetByID(registrationID)
	if err != nil {
		return nil, newError(CodeNotFound, "registration not found")
	}
	return reg, nil
}

// GetAll lists all registrations.
func (s *DefaultRegistrationService) GetAll() ([]models.Registration, error) {
	return s.Repo.GetAll()
}

// Delete removes a registration and cascades to its payment and attendance
// rows.
func (s *DefaultRegistrationService) Delete(registrationID string) error {
	reg, err := s.Repo.GetByID(registrationID)
	if err != nil {
		return newError(CodeNotFound, "registration not found")
	}
	if err := s.Payments.DeleteByRef(reg.ID); err != nil {
		return err
	}
	if err := s.Attendances.DeleteByRegistrationID(reg.ID); err != nil {
		return err
	}
	return s.Repo.Delete(reg.ID)
}
