package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Sender delivers verification emails. It is an interface so handler tests
// can substitute a recorder for the SMTP dialer.
type Sender interface {
	SendVerification(to, link string) error
}

// SMTPSender sends through a plain SMTP relay.
type SMTPSender struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (s SMTPSender) SendVerification(to, link string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your email")
	m.SetBody("text/plain", fmt.Sprintf("Click the link below to verify your email:\n\n%s\n", link))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending verification mail to %s: %w", to, err)
	}
	return nil
}
