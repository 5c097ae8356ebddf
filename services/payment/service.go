package payment

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	accommodationRepo "confreg/database/repository/accommodation"
	paymentRepo "confreg/database/repository/payment"
	registrationRepo "confreg/database/repository/registration"
	userRepo "confreg/database/repository/user"
	"confreg/models"
)

// BadgeIssuer issues (or reuses) the attendance QR for a paid registration.
type BadgeIssuer interface {
	EnsureIssued(reg *models.Registration) error
}

// Notifier delivers the payment confirmation to the attendee.
type Notifier interface {
	SendPaymentConfirmation(user *models.User, reg *models.Registration) error
}

// PaymentService drives the payment ledger and its reconciliation paths.
type PaymentService interface {
	// CreateOrder opens a gateway order and a CREATED ledger row for the
	// outstanding balance of a registration or accommodation booking.
	CreateOrder(userID, paymentType, refID string) (*models.Payment, error)
	// Verify applies a client-reported capture after checking its signature.
	Verify(orderID, gatewayPaymentID, signature string) (*models.Payment, error)
	// HandleWebhook applies a gateway push. Idempotent under redelivery.
	HandleWebhook(body []byte, headerSignature string) error
	// Reconcile asks the gateway for an order's payments and applies a
	// captured one. Recovers from missed callbacks and webhooks.
	Reconcile(orderID string) (*models.Payment, error)
	// ReportFailure records a client-reported failed attempt. Telemetry
	// only: the registration's payment status is never derived from it.
	ReportFailure(orderID, gatewayPaymentID, reason string) error
	// ListByRef lists the ledger rows for a reference.
	ListByRef(refID string) ([]models.Payment, error)
	// ResendConfirmation re-runs the post-success side effects (admin).
	ResendConfirmation(registrationID string) error
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Payments       paymentRepo.PaymentRepository
	Registrations  registrationRepo.RegistrationRepository
	Accommodations accommodationRepo.AccommodationRepository
	Users          userRepo.UserRepository
	Gateway        Gateway
	Badges         BadgeIssuer
	Notifier       Notifier
	Logger         *zap.Logger

	KeySecret     string
	WebhookSecret string
	Currency      string
}

// CreateOrder opens a gateway order for the outstanding balance.
func (s *DefaultPaymentService) CreateOrder(userID, paymentType, refID string) (*models.Payment, error) {
	var totalAmount, totalPaid int

	switch paymentType {
	case models.PaymentTypeRegistration:
		reg, err := s.Registrations.GetByID(refID)
		if err != nil {
			return nil, newError(CodeNotFound, "registration not found")
		}
		if reg.UserID != userID {
			return nil, newError(CodeInvalidRequest, "registration belongs to another user")
		}
		totalAmount, totalPaid = reg.TotalAmount, reg.TotalPaid
	case models.PaymentTypeAccommodation:
		booking, err := s.Accommodations.GetByID(refID)
		if err != nil {
			return nil, newError(CodeNotFound, "accommodation booking not found")
		}
		if booking.UserID != userID {
			return nil, newError(CodeInvalidRequest, "booking belongs to another user")
		}
		totalAmount, totalPaid = booking.Amount, booking.TotalPaid
	default:
		return nil, newError(CodeInvalidRequest, "unknown payment type")
	}

	due := totalAmount - totalPaid
	if due <= 0 {
		return nil, newError(CodeAlreadyPaid, "nothing left to pay")
	}

	orderID, err := s.Gateway.CreateOrder(due*100, s.Currency, refID, map[string]interface{}{
		"paymentType": paymentType,
	})
	if err != nil {
		s.Logger.Error("gateway order creation failed", zap.String("refId", refID), zap.Error(err))
		return nil, newError(CodeGatewayFailure, "payment gateway is unavailable, please retry")
	}

	p := &models.Payment{
		ID:             uuid.New().String(),
		UserID:         userID,
		RefID:          refID,
		PaymentType:    paymentType,
		Amount:         due,
		Currency:       s.Currency,
		GatewayOrderID: orderID,
	}
	if err := s.Payments.Create(p); err != nil {
		return nil, err
	}

	s.Logger.Info("payment order created",
		zap.String("orderId", orderID),
		zap.String("refId", refID),
		zap.Int("amount", due))
	return p, nil
}

// Verify applies a client-reported capture. The signature is recomputed
// locally and compared constant-time; a mismatch mutates nothing.
func (s *DefaultPaymentService) Verify(orderID, gatewayPaymentID, signature string) (*models.Payment, error) {
	p, err := s.Payments.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, newError(CodeNotFound, "no payment found for order")
	}

	if !VerifyPaymentSignature(orderID, gatewayPaymentID, signature, s.KeySecret) {
		s.Logger.Warn("payment signature mismatch", zap.String("orderId", orderID))
		return nil, newError(CodeSignatureMismatch, "payment signature verification failed")
	}

	if err := s.applySuccess(p, gatewayPaymentID, signature); err != nil {
		return nil, err
	}
	return s.Payments.GetByOrderID(orderID)
}

// ReportFailure records a failed attempt on its ledger row. It deliberately
// does not touch the registration: a user with a prior partial success must
// not be flipped by an unrelated failed retry, and status is always derived
// from the ledger sum.
func (s *DefaultPaymentService) ReportFailure(orderID, gatewayPaymentID, reason string) error {
	p, err := s.Payments.GetByOrderID(orderID)
	if err != nil {
		return err
	}
	if p == nil {
		return newError(CodeNotFound, "no payment found for order")
	}
	if reason == "" {
		reason = "payment failed"
	}
	return s.Payments.MarkFailed(orderID, gatewayPaymentID, reason)
}

// ListByRef lists the ledger rows for a reference.
func (s *DefaultPaymentService) ListByRef(refID string) ([]models.Payment, error) {
	return s.Payments.ListByRef(refID)
}

// applySuccess is the single convergence point for all three reconciliation
// entry points. The SUCCESS transition happens at most once; the aggregate
// is then recomputed from the full ledger sum, so replays are no-ops.
func (s *DefaultPaymentService) applySuccess(p *models.Payment, gatewayPaymentID, signature string) error {
	applied, err := s.Payments.MarkSuccess(p.GatewayOrderID, gatewayPaymentID, signature)
	if err != nil {
		return err
	}
	if !applied {
		s.Logger.Info("payment already reconciled, skipping",
			zap.String("orderId", p.GatewayOrderID))
	}

	total, err := s.Payments.SumSuccessByRef(p.RefID, p.PaymentType)
	if err != nil {
		return err
	}

	switch p.PaymentType {
	case models.PaymentTypeRegistration:
		reg, err := s.Registrations.GetByID(p.RefID)
		if err != nil {
			return err
		}
		status := models.DerivePaymentStatus(total, reg.TotalAmount)
		if err := s.Registrations.SetFields(reg.ID, bson.M{
			"total_paid":     total,
			"payment_status": status,
		}); err != nil {
			return err
		}
		reg.TotalPaid = total
		reg.PaymentStatus = status

		s.Logger.Info("payment reconciled",
			zap.String("orderId", p.GatewayOrderID),
			zap.String("registrationNumber", reg.RegistrationNumber),
			zap.Int("totalPaid", total),
			zap.String("status", status))

		// Side effects run once per capture and never roll back the
		// payment; failures are recorded for an admin-triggered resend.
		if applied && status == models.PaymentStatusPaid {
			s.runSideEffects(reg)
		}

	case models.PaymentTypeAccommodation:
		booking, err := s.Accommodations.GetByID(p.RefID)
		if err != nil {
			return err
		}
		status := models.DerivePaymentStatus(total, booking.Amount)
		if err := s.Accommodations.SetFields(booking.ID, bson.M{
			"total_paid":     total,
			"payment_status": status,
		}); err != nil {
			return err
		}
		s.Logger.Info("accommodation payment reconciled",
			zap.String("orderId", p.GatewayOrderID),
			zap.String("bookingId", booking.ID),
			zap.Int("totalPaid", total))
	}

	return nil
}

// runSideEffects issues the attendance QR and sends the confirmation mail.
// Best effort: the outcome is recorded on the registration and never
// propagated to the payment path.
func (s *DefaultPaymentService) runSideEffects(reg *models.Registration) {
	var firstErr error

	if s.Badges != nil {
		if err := s.Badges.EnsureIssued(reg); err != nil {
			firstErr = err
			s.Logger.Error("failed to issue attendance QR",
				zap.String("registrationNumber", reg.RegistrationNumber), zap.Error(err))
		}
	}

	if s.Notifier != nil {
		user, err := s.Users.GetByID(reg.UserID)
		if err == nil {
			err = s.Notifier.SendPaymentConfirmation(user, reg)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.Logger.Error("failed to send payment confirmation",
				zap.String("registrationNumber", reg.RegistrationNumber), zap.Error(err))
		}
	}

	now := time.Now()
	fields := bson.M{"last_notify_at": now, "last_notify_error": ""}
	if firstErr != nil {
		fields["last_notify_error"] = firstErr.Error()
	}
	if err := s.Registrations.SetFields(reg.ID, fields); err != nil {
		s.Logger.Error("failed to record notification outcome",
			zap.String("registrationId", reg.ID), zap.Error(err))
	}
}

// ResendConfirmation re-runs the post-success side effects for a paid
// registration.
func (s *DefaultPaymentService) ResendConfirmation(registrationID string) error {
	reg, err := s.Registrations.GetByID(registrationID)
	if err != nil {
		return newError(CodeNotFound, "registration not found")
	}
	if reg.PaymentStatus != models.PaymentStatusPaid {
		return newError(CodeInvalidRequest, "registration is not paid")
	}
	s.runSideEffects(reg)
	return nil
}
