package contact

import (
	"bytes"
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/investa/finserve/internal/domain"
)

// Brand appears in the notification header and footer
const Brand = "Investa Finserve"

//go:embed templates/enquiry.txt.tmpl
var textTemplateSource string

//go:embed templates/enquiry.html.tmpl
var htmlTemplateSource string

var (
	textTemplate = template.Must(template.New("enquiry.txt").Parse(textTemplateSource))
	htmlTemplate = htmltemplate.Must(htmltemplate.New("enquiry.html").Parse(htmlTemplateSource))
)

// Message is a rendered notification ready for a Sender
type Message struct {
	From      string
	To        string
	ReplyTo   string
	Subject   string
	Text      string
	HTML      string
	Reference string
}

type messageData struct {
	domain.Enquiry
	Brand     string
	Reference string
	Year      int
}

// Subject returns the notification subject line
func Subject(e domain.Enquiry) string {
	return fmt.Sprintf("New Lead: %s Enquiry from %s", e.EnquiryType, e.Name)
}

// BuildMessage renders the notification for an enquiry. The mailbox both
// sends and receives it; replies go to the enquirer.
func BuildMessage(e domain.Enquiry, mailbox, reference string, now time.Time) (Message, error) {
	data := messageData{Enquiry: e, Brand: Brand, Reference: reference, Year: now.Year()}

	var text bytes.Buffer
	if err := textTemplate.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}
	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}

	return Message{
		From:      mailbox,
		To:        mailbox,
		ReplyTo:   e.Email,
		Subject:   Subject(e),
		Text:      text.String(),
		HTML:      html.String(),
		Reference: reference,
	}, nil
}
