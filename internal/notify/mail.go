package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// MailConfig holds SMTP connection settings.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// MailNotifier delivers status notifications over SMTP.
type MailNotifier struct {
	client *mail.Client
	from   string
}

// NewMailNotifier creates a MailNotifier from SMTP settings.
func NewMailNotifier(cfg MailConfig) (*MailNotifier, error) {
	client, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &MailNotifier{
		client: client,
		from:   cfg.From,
	}, nil
}

func (m *MailNotifier) BookingStatusChanged(ctx context.Context, n StatusNotification) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("failed to set From address: %w", err)
	}
	if err := msg.To(n.CustomerEmail); err != nil {
		return fmt.Errorf("failed to set To address: %w", err)
	}
	msg.Subject(n.Subject())
	msg.SetBodyString(mail.TypeTextPlain, n.Body())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
