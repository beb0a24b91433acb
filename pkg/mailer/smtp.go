package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/easton-hill/wakeup/pkg/secrets"
)

const (
	DefaultHost    = "smtp.gmail.com"
	DefaultPort    = 465
	DefaultTimeout = 30 * time.Second
)

// SMTP sends messages through an implicit-TLS submission port with PLAIN
// authentication. The account is both the login and the From address.
type SMTP struct {
	Host    string
	Port    int
	Timeout time.Duration
	User    string

	password string
}

// New reads MAIL_USER and MAIL_PASSWORD from sec. Missing credentials fail
// here, before any message is composed.
func New(sec secrets.Provider) (*SMTP, error) {
	user, err := secrets.Require(sec, secrets.MailUser)
	if err != nil {
		return nil, err
	}
	password, err := secrets.Require(sec, secrets.MailPassword)
	if err != nil {
		return nil, err
	}

	return &SMTP{
		Host:     DefaultHost,
		Port:     DefaultPort,
		Timeout:  DefaultTimeout,
		User:     user,
		password: password,
	}, nil
}

// Compose builds a multipart/alternative message: the plain-text rendering
// first, the HTML as its alternative.
func (s *SMTP) Compose(m *Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.User); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", s.User, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, PlainText(m.HTML))
	msg.AddAlternativeString(mail.TypeTextHTML, m.HTML)
	return msg, nil
}

func (s *SMTP) Send(ctx context.Context, m *Message) error {
	msg, err := s.Compose(m)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.Host,
		mail.WithPort(s.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.User),
		mail.WithPassword(s.password),
		mail.WithTimeout(s.timeout()),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	slog.Debug("sending mail", "host", s.Host, "port", s.Port, "to", m.To)
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", s.Host, s.Port, err)
	}
	slog.Info("mail sent", "to", m.To, "subject", m.Subject)
	return nil
}

func (s *SMTP) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}
