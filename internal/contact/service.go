package contact

import (
	"context"
	"errors"
	"time"

	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/internal/logging"
	"github.com/investa/finserve/pkg/id"
)

// ErrDelivery wraps failures of the underlying Sender
var ErrDelivery = errors.New("failed to send email")

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// Service accepts enquiries and relays them to the business mailbox
type Service struct {
	mailbox string
	sender  Sender
	logger  *logging.Logger
}

// NewService creates a service delivering to mailbox through sender
func NewService(mailbox string, sender Sender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewSilentLogger()
	}
	return &Service{mailbox: mailbox, sender: sender, logger: logger}
}

// Submit validates and relays an enquiry, returning its reference
func (s *Service) Submit(ctx context.Context, e domain.Enquiry) (string, error) {
	e = Normalize(e)
	if err := Validate(e); err != nil {
		return "", err
	}

	now := nowFunc()
	ref := id.NewAt(now)
	msg, err := BuildMessage(e, s.mailbox, ref, now)
	if err != nil {
		return "", err
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("reference", ref).Msg("error sending email")
		return "", errors.Join(ErrDelivery, err)
	}

	s.logger.Info().Str("reference", ref).Str("enquiry_type", e.EnquiryType).Msg("enquiry relayed")
	return ref, nil
}
