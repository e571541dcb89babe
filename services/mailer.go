package services

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/domodwyer/mailyak/v3"
)

// EnquiryMail is one transactional message produced by the public enquiry
// forms (security audit requests, career applications, AMC enquiries).
type EnquiryMail struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Mailer sends transactional mail over SMTP. Sends are fire-and-forget from
// the handlers' perspective; delivery failures are logged, never surfaced.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewMailerFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASS and MAIL_FROM. With no SMTP_HOST the mailer is disabled and
// Send becomes a no-op error.
func NewMailerFromEnv() *Mailer {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &Mailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: os.Getenv("MAIL_FROM"),
	}
}

// Enabled reports whether SMTP is configured.
func (m *Mailer) Enabled() bool { return m.host != "" }

// Send delivers one message synchronously. Callers that must not block run
// it in a goroutine.
func (m *Mailer) Send(msg EnquiryMail) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer: SMTP not configured")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	mail := mailyak.New(m.host+":"+m.port, auth)
	mail.From(m.from)
	mail.To(msg.To...)
	mail.Subject(msg.Subject)
	if msg.ReplyTo != "" {
		mail.ReplyTo(msg.ReplyTo)
	}
	mail.HTML().Set(msg.HTML)

	if err := mail.Send(); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}
