package mail

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends confirmation emails over SMTP. Credentials are per-guild
// and supplied per send; the host and port are process configuration.
type SMTPMailer struct {
	Host string
	Port int
}

// NewSMTPMailer creates a mailer from the mail.host / mail.port config keys,
// defaulting to gmail's submission endpoint.
func NewSMTPMailer() *SMTPMailer {
	host := viper.GetString("mail.host")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := viper.GetInt("mail.port")
	if port == 0 {
		port = 587
	}
	return &SMTPMailer{Host: host, Port: port}
}

// Send delivers a single plain-text email.
func (m *SMTPMailer) Send(smtpUser, smtpPassword, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", smtpUser)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.Host, m.Port, smtpUser, smtpPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
