package reminder

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers reminder emails
type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, body string) error
}

// SendGridMailer sends reminder emails through SendGrid. With no API key
// configured it logs the send and reports success, so local setups work
// without an account.
type SendGridMailer struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridMailer creates a new SendGrid mailer
func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

// Send delivers one email
func (m *SendGridMailer) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	if m.apiKey == "" {
		log.Printf("sendgrid disabled, skipping email to %s: %s", toEmail, subject)
		return nil
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}
