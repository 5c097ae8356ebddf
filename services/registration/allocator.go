package registration

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	counterRepo "confreg/database/repository/counter"
	"confreg/models"
	"confreg/services/pricing"
	"confreg/utils"
)

// maxManualProbes bounds the manual probe-and-reserve scan.
const maxManualProbes = 500

// FormatNumber renders a registration number: prefix plus a zero-padded
// four-digit sequence, e.g. "AOA2026-0001".
func FormatNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

// nextRegistrationNumber allocates the next number from the shared counter.
// A missing counter is bootstrapped from the highest suffix already issued;
// the seed insert tolerates losing a bootstrap race.
func (s *DefaultRegistrationService) nextRegistrationNumber() (string, error) {
	prefix := s.Table().Prefix

	seq, err := s.Counters.NextSequence(models.CounterRegistrationNumber)
	if errors.Is(err, counterRepo.ErrCounterMissing) {
		max, scanErr := s.Repo.MaxNumberSuffix(prefix)
		if scanErr != nil {
			return "", scanErr
		}
		if seedErr := s.Counters.EnsureSeed(models.CounterRegistrationNumber, max); seedErr != nil {
			return "", seedErr
		}
		seq, err = s.Counters.NextSequence(models.CounterRegistrationNumber)
	}
	if err != nil {
		return "", err
	}
	return FormatNumber(prefix, seq), nil
}

// CreateManual registers a user under a preferred number. It probes forward
// from the requested start, attempting a conditional insert per candidate
// and skipping numbers already in use, then raises the shared counter to
// cover the number it consumed so the automatic path cannot collide later.
func (s *DefaultRegistrationService) CreateManual(req ManualRequest) (*models.Registration, error) {
	table := s.Table()
	logger := utils.GetLogger()

	user, err := s.Users.GetByID(req.UserID)
	if err != nil {
		return nil, newError(CodeNotFound, "user not found")
	}
	role, ok := pricing.NormalizeRole(user.Role)
	if !ok {
		return nil, newError(CodeInvalidRequest, "profile has an unrecognized role")
	}
	if existing, err := s.Repo.GetByUserID(req.UserID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, newError(CodeConflict, "user already has a registration")
	}

	phase := pricing.PhaseOn(table, s.Now())
	if err := pricing.ValidateSelection(table, role, phase, req.Selections); err != nil {
		return nil, err
	}
	breakdown, err := pricing.Calculate(table, role, phase, req.Selections, req.CouponCode)
	if err != nil {
		return nil, err
	}

	start := req.PreferredNumber
	if start <= 0 {
		start = 1
	}

	reg := &models.Registration{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		Role:          role,
		BookingPhase:  phase,
		Selections:    req.Selections,
		Breakdown:     breakdown,
		TotalAmount:   breakdown.TotalAmount,
		TotalPaid:     0,
		PaymentStatus: models.DerivePaymentStatus(0, breakdown.TotalAmount),
	}

	for i := 0; i < maxManualProbes; i++ {
		candidate := start + i
		reg.RegistrationNumber = FormatNumber(table.Prefix, candidate)
		err := s.Repo.Create(reg)
		if err == nil {
			// The counter must end up at least as large as any number in
			// use, or the automatic path would re-issue it.
			if raiseErr := s.Counters.RaiseTo(models.CounterRegistrationNumber, candidate); raiseErr != nil {
				logger.Error("failed to raise counter after manual registration",
					zap.Int("candidate", candidate), zap.Error(raiseErr))
			}
			logger.Info("manual registration created",
				zap.String("registrationNumber", reg.RegistrationNumber),
				zap.String("userId", req.UserID))
			return reg, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			// Number taken; try the next one. Refresh the id so a retried
			// insert never trips its own unique index.
			reg.ID = uuid.New().String()
			reg.CreatedAt = time.Time{}
			continue
		}
		return nil, err
	}
	return nil, newError(CodeNumberExhausted, "no free registration number found in probe range")
}

// CounterValue reports the allocator's current sequence. A counter that has
// never been seeded reports the highest suffix already issued.
func (s *DefaultRegistrationService) CounterValue() (int, error) {
	counter, err := s.Counters.Get(models.CounterRegistrationNumber)
	if err != nil {
		return 0, err
	}
	if counter == nil {
		return s.Repo.MaxNumberSuffix(s.Table().Prefix)
	}
	return counter.Sequence, nil
}

// SetCounter overwrites the allocator sequence. Values below the highest
// suffix already in use are rejected: lowering the counter would make the
// automatic path re-issue a taken number.
func (s *DefaultRegistrationService) SetCounter(value int) error {
	maxUsed, err := s.Repo.MaxNumberSuffix(s.Table().Prefix)
	if err != nil {
		return err
	}
	if value < maxUsed {
		return newError(CodeInvalidRequest,
			fmt.Sprintf("counter cannot be set below the highest issued number (%d)", maxUsed))
	}
	return s.Counters.Set(models.CounterRegistrationNumber, value)
}
