// Package mail sends transactional email over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/mkarpis/notevault/internal/server/config"
)

// Mailer sends account-related email. Sends are fire-and-forget from the
// caller's perspective; failures are only ever logged.
type Mailer interface {
	SendWelcome(ctx context.Context, to string) error
}

// SMTPMailer is a Mailer backed by an SMTP server.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer builds a Mailer from the SMTP settings in cfg.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	client, err := gomail.NewClient(cfg.SMTPHost,
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTPUser),
		gomail.WithPassword(cfg.SMTPPassword),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.MailFrom}, nil
}

// SendWelcome emails a registration greeting to the given address.
func (m *SMTPMailer) SendWelcome(ctx context.Context, to string) error {
	msg, err := welcomeMessage(m.from, to)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending welcome email: %w", err)
	}

	return nil
}

func welcomeMessage(from, to string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("welcome to our website")
	msg.SetBodyString(gomail.TypeTextPlain, "you are registered successfully")
	msg.AddAlternativeString(gomail.TypeTextHTML, "<h1>Welcome!</h1><p>Thank you for registering.</p>")

	return msg, nil
}
