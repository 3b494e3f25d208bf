// Package mail delivers outbound transactional email.
package mail

import (
	"fmt"
	"html"
	"strings"

	"curiouslife/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends contact-form submissions to the site operators.
type Mailer interface {
	SendContact(name, email, message string) error
}

// SMTPMailer delivers mail through an SMTP relay via gomail.
type SMTPMailer struct {
	dialer    *gomail.Dialer
	from      string
	recipient string
}

// NewSMTPMailer builds a mailer from SMTP configuration. The recipient
// defaults to the SMTP user when CONTACT_RECIPIENT is unset.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	recipient := cfg.ContactRecipient
	if recipient == "" {
		recipient = cfg.SMTPUser
	}
	return &SMTPMailer{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:      cfg.SMTPUser,
		recipient: recipient,
	}
}

// SendContact sends a contact-form submission as a single email.
func (m *SMTPMailer) SendContact(name, email, message string) error {
	if m.from == "" || m.recipient == "" {
		return fmt.Errorf("smtp sender or recipient not configured")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "Curious Life Contact")
	msg.SetHeader("To", m.recipient)
	msg.SetHeader("Subject", fmt.Sprintf("New contact form submission from %s", name))
	msg.SetHeader("Reply-To", email)
	msg.SetBody("text/plain", fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", name, email, message))
	msg.AddAlternative("text/html", contactHTML(name, email, message))

	return m.dialer.DialAndSend(msg)
}

func contactHTML(name, email, message string) string {
	escaped := html.EscapeString(message)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return fmt.Sprintf(
		`<h2>New contact form submission</h2>`+
			`<p><strong>Name:</strong> %s</p>`+
			`<p><strong>Email:</strong> %s</p>`+
			`<p><strong>Message:</strong></p><div>%s</div>`,
		html.EscapeString(name), html.EscapeString(email), escaped)
}
