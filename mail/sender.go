package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"
)

// Sender delivers one-time login codes out of band. Delivery is best-effort
// from the portal's point of view, but a delivery failure is reported to the
// caller rather than swallowed.
type Sender interface {
	SendOneTimeCode(ctx context.Context, email, code string) error
}

// SMTPSender sends codes through a plain SMTP relay.
type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func NewSMTPSender(host, port, user, pass, from string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass, From: from}
}

func (s *SMTPSender) SendOneTimeCode(ctx context.Context, email, code string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Your login code\r\n\r\n"+
		"Your Rugalika portal login code is %s. It expires in 5 minutes.\r\n",
		s.From, email, code)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}
	addr := s.Host + ":" + s.Port
	if err := smtp.SendMail(addr, auth, s.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email, err)
	}
	return nil
}

// LogSender logs codes instead of sending them. Development only.
type LogSender struct{}

func (LogSender) SendOneTimeCode(_ context.Context, email, code string) error {
	log.Info().Str("email", email).Str("code", code).Msg("one-time code (log sender)")
	return nil
}
