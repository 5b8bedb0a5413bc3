package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends mail through a plain SMTP relay with AUTH PLAIN.
type SMTP struct {
	cfg  SMTPConfig
	addr string
}

// NewSMTP returns an SMTP sender.
func NewSMTP(cfg SMTPConfig) *SMTP {
	return &SMTP{
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

// Send delivers the payload. The context is honored only before the dial;
// net/smtp has no per-operation deadline hook.
func (s *SMTP) Send(ctx context.Context, p Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	contentType := "text/plain; charset=\"utf-8\""
	if p.HTML {
		contentType = "text/html; charset=\"utf-8\""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(p.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", p.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(p.Body)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	return smtp.SendMail(s.addr, auth, s.cfg.From, p.To, []byte(b.String()))
}
