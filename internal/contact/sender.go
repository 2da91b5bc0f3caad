package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/investa/finserve/internal/logging"
)

// Sender delivers a rendered message
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds mail relay settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPSender delivers through an authenticated SMTP relay using STARTTLS
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPSender{cfg: cfg}
}

// newMsg converts a Message into a go-mail message
func newMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if err := m.ReplyTo(msg.ReplyTo); err != nil {
		return nil, fmt.Errorf("reply-to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	if msg.Reference != "" {
		m.SetGenHeader("X-Enquiry-Reference", msg.Reference)
	}
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := newMsg(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(s.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}
	return nil
}

// LogSender records messages in the log instead of sending them. It is used
// when no SMTP credentials are configured.
type LogSender struct {
	Logger *logging.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	logger := s.Logger
	if logger == nil {
		logger = logging.NewSilentLogger()
	}
	logger.Info().
		Str("reference", msg.Reference).
		Str("subject", msg.Subject).
		Str("reply_to", msg.ReplyTo).
		Msg("enquiry received (mail delivery disabled)")
	return nil
}
