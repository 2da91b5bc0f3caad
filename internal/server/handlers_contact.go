package server

import (
	"errors"
	"net/http"

	"github.com/investa/finserve/internal/contact"
	"github.com/investa/finserve/internal/domain"
)

const (
	msgContactSent   = "Email sent successfully"
	msgContactFailed = "Failed to send email. Please ensure SMTP credentials are correct."
)

type contactResponse struct {
	Message   string `json:"message"`
	Reference string `json:"reference,omitempty"`
}

// handleContact handles POST /api/contact.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if s.contact == nil {
		WriteError(w, http.StatusServiceUnavailable, "Contact form is not enabled")
		return
	}

	var enquiry domain.Enquiry
	if err := readJSON(w, r, &enquiry); err != nil && !errors.Is(err, errEmptyBody) {
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	ref, err := s.contact.Submit(r.Context(), enquiry)
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: verr.Error(), Fields: verr.Fields})
			return
		}
		WriteError(w, http.StatusInternalServerError, msgContactFailed)
		return
	}

	WriteJSON(w, http.StatusOK, contactResponse{Message: msgContactSent, Reference: ref})
}
