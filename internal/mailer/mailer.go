package mailer

import (
	"context"

	"crm-backend/internal/config"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=mailer.go -destination=../mocks/mailer_mocks.go -package=mocks

// Invitation is an outbound magic-link invitation email.
type Invitation struct {
	To              string
	RegistrationURL string
}

// Mailer is an interface for sending invitation emails. Any type that
// implements this interface can be used to send or simulate sending email.
type Mailer interface {
	SendInvitation(ctx context.Context, inv *Invitation) error
}

// New returns the Mailgun-backed mailer when credentials are configured,
// otherwise a mailer that only logs. Local development rarely has Mailgun
// credentials and invitation flows must still be walkable.
func New(cfg *config.Config) Mailer {
	if cfg.MailgunAPIKey == "" || cfg.MailgunDomain == "" {
		logrus.Warn("Mailgun not configured, invitation emails will be logged instead of sent")
		return &LogMailer{}
	}
	return NewMailgunMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunFromEmail)
}

// LogMailer writes invitations to the log instead of delivering them.
type LogMailer struct{}

// SendInvitation logs the invitation and reports success.
func (m *LogMailer) SendInvitation(_ context.Context, inv *Invitation) error {
	logrus.WithFields(logrus.Fields{
		"to":  inv.To,
		"url": inv.RegistrationURL,
	}).Info("Invitation email (not sent: mailer disabled)")
	return nil
}
