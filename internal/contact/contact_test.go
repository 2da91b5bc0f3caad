package contact

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/pkg/id"
)

func validEnquiry() domain.Enquiry {
	return domain.Enquiry{
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		EnquiryType: "Mutual Fund",
		Message:     "I would like to start a SIP for my daughter's education.",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Enquiry)
		field   string
		missing bool
	}{
		{"valid", func(*domain.Enquiry) {}, "", false},
		{"missing name", func(e *domain.Enquiry) { e.Name = "" }, "name", true},
		{"long name", func(e *domain.Enquiry) { e.Name = strings.Repeat("a", 51) }, "name", false},
		{"fifty rune name", func(e *domain.Enquiry) { e.Name = strings.Repeat("é", 50) }, "", false},
		{"missing email", func(e *domain.Enquiry) { e.Email = "" }, "email", true},
		{"bad email", func(e *domain.Enquiry) { e.Email = "asha@example" }, "email", false},
		{"email with space", func(e *domain.Enquiry) { e.Email = "asha rao@example.com" }, "email", false},
		{"missing type", func(e *domain.Enquiry) { e.EnquiryType = "" }, "enquiryType", true},
		{"unknown type", func(e *domain.Enquiry) { e.EnquiryType = "Crypto" }, "enquiryType", false},
		{"type is case insensitive", func(e *domain.Enquiry) { e.EnquiryType = "gold" }, "", false},
		{"missing query", func(e *domain.Enquiry) { e.Message = "" }, "query", true},
		{"long query", func(e *domain.Enquiry) { e.Message = strings.Repeat("x", 301) }, "query", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEnquiry()
			tt.mutate(&e)
			err := Validate(e)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEnquiry)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Contains(t, ve.Fields, tt.field)
			assert.Equal(t, tt.missing, ve.Missing)
			if tt.missing {
				assert.Equal(t, "All fields are required", err.Error())
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	e := Normalize(domain.Enquiry{Name: "  Ravi ", Email: " r@x.in", EnquiryType: "Debt ", Message: "\nhello\n"})
	assert.Equal(t, domain.Enquiry{Name: "Ravi", Email: "r@x.in", EnquiryType: "Debt", Message: "hello"}, e)
}

func TestBuildMessage(t *testing.T) {
	e := validEnquiry()
	e.Message = `<script>alert("hi")</script>`
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	msg, err := BuildMessage(e, "leads@investa.example", "REF123", now)
	require.NoError(t, err)

	assert.Equal(t, "leads@investa.example", msg.From)
	assert.Equal(t, "leads@investa.example", msg.To)
	assert.Equal(t, "asha@example.com", msg.ReplyTo)
	assert.Equal(t, "New Lead: Mutual Fund Enquiry from Asha Rao", msg.Subject)

	assert.Contains(t, msg.Text, "Name: Asha Rao")
	assert.Contains(t, msg.Text, "Enquiry Type: Mutual Fund")
	assert.Contains(t, msg.Text, `<script>alert("hi")</script>`)

	assert.Contains(t, msg.HTML, "Investa Finserve")
	assert.Contains(t, msg.HTML, "&copy; 2025 Investa Finserve Services")
	assert.Contains(t, msg.HTML, "REF123")
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestNewMsg(t *testing.T) {
	msg, err := BuildMessage(validEnquiry(), "leads@investa.example", "REF1", time.Now())
	require.NoError(t, err)
	m, err := newMsg(msg)
	require.NoError(t, err)
	assert.Equal(t, []string{"New Lead: Mutual Fund Enquiry from Asha Rao"}, m.GetGenHeader("Subject"))

	msg.ReplyTo = "not an address"
	_, err = newMsg(msg)
	assert.Error(t, err)
}

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestServiceSubmit(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	defer func() { nowFunc = time.Now }()

	sender := &recordingSender{}
	svc := NewService("leads@investa.example", sender, nil)

	e := validEnquiry()
	e.Name = "  Asha Rao  "
	ref, err := svc.Submit(context.Background(), e)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, ref, sender.sent[0].Reference)
	assert.Equal(t, "New Lead: Mutual Fund Enquiry from Asha Rao", sender.sent[0].Subject)

	ts, err := id.Time(ref)
	require.NoError(t, err)
	assert.True(t, ts.Equal(fixed))
}

func TestServiceSubmitInvalid(t *testing.T) {
	sender := &recordingSender{}
	_, err := NewService("leads@investa.example", sender, nil).Submit(context.Background(), domain.Enquiry{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidEnquiry)
	assert.Empty(t, sender.sent)
}

func TestServiceSubmitDeliveryFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("535 authentication failed")}
	_, err := NewService("leads@investa.example", sender, nil).Submit(context.Background(), validEnquiry())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Contains(t, err.Error(), "535")
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.Send(context.Background(), Message{Subject: "s"}))
}
