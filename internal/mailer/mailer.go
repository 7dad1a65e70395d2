// Package mailer delivers verification codes to email addresses.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/isdelr/resume-builder-be/internal/config"
)

// Deliverer sends a verification code to an address.
type Deliverer interface {
	Deliver(ctx context.Context, to, code string) error
}

// New picks the SMTP deliverer when SMTP is configured and the log deliverer otherwise.
func New(cfg config.SMTPConfig) Deliverer {
	if cfg.Enabled() {
		return NewSMTP(cfg)
	}
	log.Warn().Msg("SMTP not configured, verification codes will only be logged")
	return LogDeliverer{}
}

// SMTP sends verification mail through an SMTP relay using STARTTLS.
type SMTP struct {
	cfg  config.SMTPConfig
	send func(m *gomail.Message) error
}

// NewSMTP creates an SMTP deliverer.
func NewSMTP(cfg config.SMTPConfig) *SMTP {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &SMTP{cfg: cfg, send: func(m *gomail.Message) error { return d.DialAndSend(m) }}
}

// Deliver sends the code. The context only guards against starting a send after cancellation.
func (s *SMTP) Deliver(ctx context.Context, to, code string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.send(BuildMessage(s.cfg.From, to, code)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	log.Info().Str("to", to).Msg("Verification email sent")
	return nil
}

// BuildMessage renders the verification mail.
func BuildMessage(from, to, code string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your email verification")
	m.SetBody("text/plain", fmt.Sprintf("Your verification code: %s", code))
	return m
}

// LogDeliverer writes codes to the log instead of sending mail. Development only.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(_ context.Context, to, code string) error {
	log.Info().Str("to", to).Str("code", code).Msg("Verification code (not sent, SMTP disabled)")
	return nil
}
