package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/internal/tracker"
)

type fundView struct {
	Code       int                 `json:"code"`
	Name       string              `json:"name"`
	Category   string              `json:"category"`
	CurrentNAV *float64            `json:"current_nav"`
	AsOf       *time.Time          `json:"as_of,omitempty"`
	Returns    map[string]*float64 `json:"returns"`
	Return     *float64            `json:"return"`
	Loading    bool                `json:"loading"`
	Error      bool                `json:"error"`
	UpdatedAt  *time.Time          `json:"updated_at,omitempty"`
}

type fundListResponse struct {
	List        tracker.ListKind `json:"list"`
	Title       string           `json:"title"`
	Window      string           `json:"window"`
	NextRefresh *time.Time       `json:"next_refresh,omitempty"`
	Funds       []fundView       `json:"funds"`
}

func newFundView(snap domain.FundSnapshot, window domain.ReturnWindow) fundView {
	v := fundView{
		Code:       snap.Fund.Code,
		Name:       snap.Fund.Name,
		Category:   snap.Fund.Category,
		CurrentNAV: snap.CurrentNAV,
		Returns:    snap.ReturnsByLabel(),
		Return:     snap.Returns[window],
		Loading:    snap.Loading,
		Error:      snap.Error,
		AsOf:       optionalTime(snap.AsOf),
		UpdatedAt:  optionalTime(snap.UpdatedAt),
	}
	return v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func parseWindow(r *http.Request) (domain.ReturnWindow, error) {
	raw := r.URL.Query().Get("window")
	if raw == "" {
		return tracker.DefaultWindow, nil
	}
	return domain.ParseReturnWindow(raw)
}

// handleFundList handles GET /api/funds?list=popular|top&window=1Y|3Y|5Y|10Y.
func (s *Server) handleFundList(w http.ResponseWriter, r *http.Request) {
	if s.tracker == nil {
		WriteError(w, http.StatusServiceUnavailable, "Fund tracking is not enabled")
		return
	}

	list, err := tracker.ParseListKind(r.URL.Query().Get("list"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	window, err := parseWindow(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	snaps := s.tracker.Snapshots(list)
	resp := fundListResponse{
		List:        list,
		Title:       list.Title(),
		Window:      window.Label(),
		NextRefresh: optionalTime(s.tracker.NextRefresh()),
		Funds:       make([]fundView, 0, len(snaps)),
	}
	for _, snap := range snaps {
		resp.Funds = append(resp.Funds, newFundView(snap, window))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// handleFund handles GET /api/funds/{code}. refresh=true fetches the fund
// before answering.
func (s *Server) handleFund(w http.ResponseWriter, r *http.Request) {
	if s.tracker == nil {
		WriteError(w, http.StatusServiceUnavailable, "Fund tracking is not enabled")
		return
	}

	code, err := strconv.Atoi(r.PathValue("code"))
	if err != nil || code <= 0 {
		WriteError(w, http.StatusBadRequest, "Scheme code must be a positive integer")
		return
	}
	window, err := parseWindow(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		snap, err := s.tracker.RefreshFund(r.Context(), code)
		switch {
		case errors.Is(err, tracker.ErrUnknownFund):
			WriteError(w, http.StatusNotFound, "Fund not tracked: "+r.PathValue("code"))
			return
		case err != nil:
			// The snapshot keeps its last good values and carries the error flag.
			s.logger.Warn().Err(err).Int("code", code).Msg("fund refresh failed")
		}
		WriteJSON(w, http.StatusOK, newFundView(snap, window))
		return
	}

	snap, ok := s.tracker.Snapshot(code)
	if !ok {
		WriteError(w, http.StatusNotFound, "Fund not tracked: "+r.PathValue("code"))
		return
	}
	WriteJSON(w, http.StatusOK, newFundView(snap, window))
}
