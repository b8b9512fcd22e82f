package smtp

import (
	mail "github.com/go-mail/mail"
)

// Mailer sends plain-text emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     int
	from     string
	username string
	password string
}

// NewMailer returns nil when no SMTP host is configured; callers treat a
// nil Mailer as "log instead of send".
func NewMailer(host string, port int, from, username, password string) Mailer {
	if host == "" {
		return nil
	}
	return &mailer{host: host, port: port, from: from, username: username, password: password}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := mail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}
