// Package mailer provides a small SMTP mail client for outbound notifications
// and newsletter delivery. Uses net/smtp directly (no SDK) to minimize
// external dependencies.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when SMTP settings are missing. Callers treat
// mail dispatch as best-effort, so this usually just gets logged.
var ErrNotConfigured = errors.New("mailer: not configured")

// Mailer sends a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer is the production Mailer backed by a plain SMTP relay with
// PLAIN auth (Gmail, SES SMTP endpoint, etc.).
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// NewSMTPMailer creates an SMTPMailer. An empty host produces a mailer whose
// Send always returns ErrNotConfigured, which disables mail features without
// special-casing call sites.
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	if port == "" {
		port = "587"
	}
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

var _ Mailer = (*SMTPMailer)(nil)

// Send delivers one HTML email. net/smtp has no context support, so a hung
// relay stalls the call; cancellation is only honored before dialing.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.Host == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
