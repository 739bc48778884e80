package mailer

import (
	"context"
	"fmt"

	"critica/internal/config"
	"critica/internal/middleware"
	"critica/internal/observability"

	gomail "github.com/wneessen/go-mail"
)

// Mailer delivers confirmation codes to users.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, to, username, code string) error
}

// SMTPMailer sends mail through a plain SMTP endpoint. In development
// this is typically a local Mailpit/MailHog instance.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer builds a mailer from the SMTP section of the config.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUsername),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.MailFrom}, nil
}

func (m *SMTPMailer) SendConfirmationCode(ctx context.Context, to, username, code string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Your confirmation code")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Hello %s,\n\nYour confirmation code is: %s\n\nExchange it for an access token at /api/v1/auth/token/.\n",
		username, code,
	))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		observability.MailSendFailures.Inc()
		middleware.Logger.ErrorContext(ctx, "Failed to send confirmation email",
			"recipient", to,
			"error", err,
		)
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
