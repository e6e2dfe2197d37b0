package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"
)

const (
	invitationSubject = "Complete your registration"
	sendTimeout       = 15 * time.Second
)

// MailgunMailer delivers invitation emails through the Mailgun API.
type MailgunMailer struct {
	mg   *mailgun.MailgunImpl
	from string
}

// NewMailgunMailer creates a Mailgun-backed mailer.
func NewMailgunMailer(domain, apiKey, from string) *MailgunMailer {
	return &MailgunMailer{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

// SendInvitation sends the magic-link registration email.
func (m *MailgunMailer) SendInvitation(ctx context.Context, inv *Invitation) error {
	text := fmt.Sprintf("Click the following link to complete your registration: %s", inv.RegistrationURL)
	html := fmt.Sprintf(`
		<h1>Welcome to CRM App</h1>
		<p>Click the following link to complete your registration:</p>
		<a href=%q>Complete Registration</a>
		<p>This link will expire in 24 hours.</p>
	`, inv.RegistrationURL)

	msg := m.mg.NewMessage(m.from, invitationSubject, text, inv.To)
	msg.SetHtml(html)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, id, err := m.mg.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"to":         inv.To,
		"message_id": id,
		"response":   resp,
	}).Debug("Invitation email sent")
	return nil
}
