package notification

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"confreg/config"
	"confreg/models"
)

// SMTPNotifier implements Notifier over SMTP.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPNotifier builds a mailer from the application config.
func NewSMTPNotifier() *SMTPNotifier {
	cfg := config.AppConfig
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

// SendPaymentConfirmation mails the registration confirmation.
func (n *SMTPNotifier) SendPaymentConfirmation(user *models.User, reg *models.Registration) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("Registration %s confirmed", reg.RegistrationNumber))
	m.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nYour conference registration %s is confirmed.\nAmount received: INR %d.\n\nPlease present your QR code at the check-in desk.\n",
		user.FullName, reg.RegistrationNumber, reg.TotalPaid))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation mail: %w", err)
	}
	return nil
}
