// Package contact validates contact-form enquiries and relays them by email
package contact

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/investa/finserve/internal/domain"
)

const (
	MaxNameLength    = 50
	MaxMessageLength = 300
)

// ErrInvalidEnquiry is wrapped by every rejected enquiry
var ErrInvalidEnquiry = errors.New("invalid enquiry")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError lists the rejected fields by their wire names.
// Missing is set when any required field was blank.
type ValidationError struct {
	Fields  map[string]string
	Missing bool
}

func (e *ValidationError) Error() string {
	if e.Missing {
		return "All fields are required"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidEnquiry }

// Normalize trims surrounding whitespace from every field
func Normalize(e domain.Enquiry) domain.Enquiry {
	return domain.Enquiry{
		Name:        strings.TrimSpace(e.Name),
		Email:       strings.TrimSpace(e.Email),
		EnquiryType: strings.TrimSpace(e.EnquiryType),
		Message:     strings.TrimSpace(e.Message),
	}
}

// Validate checks a normalized enquiry
func Validate(e domain.Enquiry) error {
	fields := map[string]string{}
	missing := false

	switch {
	case e.Name == "":
		fields["name"], missing = "Name is required", true
	case utf8.RuneCountInString(e.Name) > MaxNameLength:
		fields["name"] = fmt.Sprintf("Name must not exceed %d characters", MaxNameLength)
	}

	switch {
	case e.Email == "":
		fields["email"], missing = "Email is required", true
	case !emailPattern.MatchString(e.Email):
		fields["email"] = "Please enter a valid email address"
	}

	switch {
	case e.EnquiryType == "":
		fields["enquiryType"], missing = "Enquiry type is required", true
	case !knownEnquiryType(e.EnquiryType):
		fields["enquiryType"] = fmt.Sprintf("Enquiry type must be one of %s", strings.Join(domain.EnquiryTypes, ", "))
	}

	switch {
	case e.Message == "":
		fields["query"], missing = "Query is required", true
	case utf8.RuneCountInString(e.Message) > MaxMessageLength:
		fields["query"] = fmt.Sprintf("Query must not exceed %d characters", MaxMessageLength)
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields, Missing: missing}
}

func knownEnquiryType(t string) bool {
	for _, known := range domain.EnquiryTypes {
		if strings.EqualFold(t, known) {
			return true
		}
	}
	return false
}
