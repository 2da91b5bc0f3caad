package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NavObservation is a single published NAV
type NavObservation struct {
	Date time.Time `json:"date"`
	NAV  float64   `json:"nav"`
}

// SchemeMeta describes a mutual fund scheme as published by the NAV feed
type SchemeMeta struct {
	SchemeCode     int    `json:"scheme_code"`
	SchemeName     string `json:"scheme_name"`
	FundHouse      string `json:"fund_house"`
	SchemeType     string `json:"scheme_type"`
	SchemeCategory string `json:"scheme_category"`
}

// NavHistory is the full NAV series for one scheme, conventionally latest first
type NavHistory struct {
	Meta         SchemeMeta       `json:"meta"`
	Observations []NavObservation `json:"observations"`
}

// ReturnWindow is a trailing return period in whole years
type ReturnWindow int

const (
	Window1Y  ReturnWindow = 1
	Window3Y  ReturnWindow = 3
	Window5Y  ReturnWindow = 5
	Window10Y ReturnWindow = 10
)

// StandardWindows lists the windows reported for every fund
func StandardWindows() []ReturnWindow {
	return []ReturnWindow{Window1Y, Window3Y, Window5Y, Window10Y}
}

// Years returns the window length
func (w ReturnWindow) Years() int { return int(w) }

// Label returns the short form, e.g. "3Y"
func (w ReturnWindow) Label() string { return strconv.Itoa(int(w)) + "Y" }

// Annualized reports whether returns over this window are expressed as CAGR
func (w ReturnWindow) Annualized() bool { return w > Window1Y }

// ParseReturnWindow accepts "3Y", "3y" or "3"
func ParseReturnWindow(s string) (ReturnWindow, error) {
	n := strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "Y")
	years, err := strconv.Atoi(n)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid return window %q", ErrInvalidInput, s)
	}
	for _, w := range StandardWindows() {
		if int(w) == years {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported return window %q (use 1Y, 3Y, 5Y or 10Y)", ErrInvalidInput, s)
}

// Fund is a tracked mutual fund scheme
type Fund struct {
	Code     int    `yaml:"code" json:"code"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
}

// FundSnapshot is the latest computed view of a fund. A nil return means the
// fund does not have enough history for that window.
type FundSnapshot struct {
	Fund       Fund                      `json:"fund"`
	CurrentNAV *float64                  `json:"current_nav"`
	AsOf       time.Time                 `json:"as_of,omitempty"`
	Returns    map[ReturnWindow]*float64 `json:"-"`
	Loading    bool                      `json:"loading"`
	Error      bool                      `json:"error"`
	UpdatedAt  time.Time                 `json:"updated_at,omitempty"`
}

// ReturnsByLabel keys returns by window label for JSON output
func (s FundSnapshot) ReturnsByLabel() map[string]*float64 {
	out := make(map[string]*float64, len(StandardWindows()))
	for _, w := range StandardWindows() {
		out[w.Label()] = s.Returns[w]
	}
	return out
}
