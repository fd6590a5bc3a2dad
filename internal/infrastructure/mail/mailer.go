package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/coderun/account-service/internal/core/ports"
)

// SMTPConfig captures the outbound email transport settings. Password is the
// already-unwrapped SMTP app password (see UnwrapAppPassword).
type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// SMTPMailer delivers messages through an SMTP relay using gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password),
		sender: cfg.Sender,
	}
}

func (m *SMTPMailer) Send(_ context.Context, msg ports.Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.sender)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
