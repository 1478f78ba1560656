// Package mailer sends the application's outgoing email over SMTP, Amazon SES or the log.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bridgeforum/internal/config"
	"bridgeforum/internal/observability"
)

// Message is one outgoing email. HTML is required; Text is the plain alternative.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ErrNoRecipient is returned for messages without a To address.
var ErrNoRecipient = errors.New("mailer: message has no recipient")

// New builds the mailer selected by MAIL_DRIVER, instrumented with delivery metrics.
func New(cfg *config.Config) (Mailer, error) {
	driver := strings.ToLower(cfg.MailDriver)
	var m Mailer
	switch driver {
	case "", "log":
		driver = "log"
		m = NewLogMailer(cfg.MailFrom)
	case "smtp":
		smtp, err := NewSMTPMailer(SMTPOptions{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			return nil, err
		}
		m = smtp
	case "ses":
		ses, err := NewSESMailer(cfg.SESRegion, cfg.MailFrom)
		if err != nil {
			return nil, err
		}
		m = ses
	default:
		return nil, fmt.Errorf("unsupported mail driver %q", cfg.MailDriver)
	}
	return Instrument(driver, m), nil
}

type instrumented struct {
	driver string
	next   Mailer
}

// Instrument counts deliveries of next under the driver label.
func Instrument(driver string, next Mailer) Mailer {
	return &instrumented{driver: driver, next: next}
}

func (m *instrumented) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		observability.MailDeliveries.WithLabelValues(m.driver, "rejected").Inc()
		return ErrNoRecipient
	}
	if err := m.next.Send(ctx, msg); err != nil {
		observability.MailDeliveries.WithLabelValues(m.driver, "failed").Inc()
		return err
	}
	observability.MailDeliveries.WithLabelValues(m.driver, "sent").Inc()
	return nil
}
