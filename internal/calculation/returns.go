package calculation

import (
	"math"
	"time"

	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/pkg/dateutil"
)

// ToleranceDays is how far from a target date an observation may sit and
// still stand in for it. It covers weekends and market holidays.
const ToleranceDays = 12

// LatestObservation returns the most recent observation. Series are usually
// latest-first but order is not assumed.
func LatestObservation(series []domain.NavObservation) (domain.NavObservation, bool) {
	if len(series) == 0 {
		return domain.NavObservation{}, false
	}
	latest := series[0]
	for _, obs := range series[1:] {
		if obs.Date.After(latest.Date) {
			latest = obs
		}
	}
	return latest, true
}

// NearestObservation returns the observation closest to target, provided it
// lies within toleranceDays. On equal distance the earlier entry in the
// series wins.
func NearestObservation(series []domain.NavObservation, target time.Time, toleranceDays int) (domain.NavObservation, bool) {
	var (
		best     domain.NavObservation
		bestDiff = math.Inf(1)
	)
	for _, obs := range series {
		if diff := dateutil.DaysBetween(obs.Date, target); diff < bestDiff {
			best, bestDiff = obs, diff
		}
	}
	if bestDiff > float64(toleranceDays) {
		return domain.NavObservation{}, false
	}
	return best, true
}

// ComputeReturn measures the trailing return over years, in percent. One year
// is a simple point-to-point return; longer windows are annualized (CAGR).
// It reports false when the series has no observation near the start of the
// window.
func ComputeReturn(series []domain.NavObservation, years int) (float64, bool) {
	if years < 1 {
		return 0, false
	}
	latest, ok := LatestObservation(series)
	if !ok {
		return 0, false
	}
	old, ok := NearestObservation(series, dateutil.SubtractYears(latest.Date, years), ToleranceDays)
	if !ok || old.NAV <= 0 {
		return 0, false
	}
	if years == 1 {
		return (latest.NAV - old.NAV) / old.NAV * 100, true
	}
	return (math.Pow(latest.NAV/old.NAV, 1/float64(years)) - 1) * 100, true
}

// ComputeReturns evaluates each window, leaving nil where history is too short.
// With no windows given the standard set is used.
func ComputeReturns(series []domain.NavObservation, windows ...domain.ReturnWindow) map[domain.ReturnWindow]*float64 {
	if len(windows) == 0 {
		windows = domain.StandardWindows()
	}
	out := make(map[domain.ReturnWindow]*float64, len(windows))
	for _, w := range windows {
		if v, ok := ComputeReturn(series, w.Years()); ok {
			out[w] = &v
		} else {
			out[w] = nil
		}
	}
	return out
}
