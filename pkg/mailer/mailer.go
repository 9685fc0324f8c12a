package mailer

import (
	"github.com/paragonmaik/accounts-api/config"
	"github.com/paragonmaik/accounts-api/pkg/logger"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single message. Delivery is fire-and-forget; no
// confirmation is tracked beyond the returned error.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromEmail)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		m.cfg.Host,
		m.cfg.Port,
		m.cfg.Username,
		m.cfg.Password,
	)

	return d.DialAndSend(msg)
}

// LogMailer logs messages instead of sending them. Used when SMTP
// credentials are not configured (local development).
type LogMailer struct{}

func (LogMailer) Send(to, subject, htmlBody string) error {
	logger.Info("[DEV MODE] Email not sent, SMTP is not configured", map[string]interface{}{
		"to":      to,
		"subject": subject,
		"body":    htmlBody,
	})
	return nil
}

// NewFromConfig picks the SMTP sender when credentials are present and the
// log-only sender otherwise.
func NewFromConfig(cfg config.SMTPConfig) Mailer {
	if cfg.Username == "" || cfg.Password == "" {
		return LogMailer{}
	}
	return NewSMTPMailer(cfg)
}
