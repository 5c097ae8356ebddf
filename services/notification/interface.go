package notification

import "confreg/models"

// Notifier delivers attendee-facing messages. Implementations are best
// effort; callers record failures and never retry automatically.
type Notifier interface {
	SendPaymentConfirmation(user *models.User, reg *models.Registration) error
}
