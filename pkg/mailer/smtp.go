// Package mailer renders contact-form notifications and hands them to an
// SMTP transport.
package mailer

import (
	"fmt"
	"html"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"storefront/internal/domain"
)

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
	log    *logrus.Logger
}

func NewSMTPMailer(host string, port int, username, password, from, to string, logger *logrus.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		to:     to,
		log:    logger,
	}
}

func (m *SMTPMailer) SendContactMessage(msg *domain.ContactMessage) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetHeader("To", m.to)
	mail.SetHeader("Subject", fmt.Sprintf("New Contact Form Message: %s", msg.Subject))
	mail.SetBody("text/html", renderContactBody(msg))

	if err := m.dialer.DialAndSend(mail); err != nil {
		m.log.Errorf("Failed to send contact email from %s: %v", msg.Email, err)
		return fmt.Errorf("failed to send contact email: %w", err)
	}

	m.log.Infof("Contact email dispatched for %s", msg.Email)
	return nil
}

func renderContactBody(msg *domain.ContactMessage) string {
	subject := msg.Subject
	if subject == "" {
		subject = "N/A"
	}
	body := strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>")

	return fmt.Sprintf(`<div style="font-family: sans-serif; line-height: 1.6;">
	<h2>New Message from the Storefront</h2>
	<p>You have received a new message through the contact form.</p>
	<hr>
	<p><strong>Name:</strong> %s</p>
	<p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
	<p><strong>Subject:</strong> %s</p>
	<p><strong>Message:</strong></p>
	<p style="padding: 10px; border-left: 3px solid #eee;">%s</p>
</div>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email), html.EscapeString(msg.Email),
		html.EscapeString(subject),
		body,
	)
}
