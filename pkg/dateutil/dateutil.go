package dateutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// NAVDateLayout is the DD-MM-YYYY layout used by the mutual fund NAV feed.
const NAVDateLayout = "02-01-2006"

// ISODateLayout is used for CSV files and JSON output.
const ISODateLayout = "2006-01-02"

const hoursPerDay = 24

// ParseNAVDate parses a DD-MM-YYYY date into a UTC calendar date
func ParseNAVDate(s string) (time.Time, error) {
	t, err := time.Parse(NAVDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid NAV date %q: %w", s, err)
	}
	return t, nil
}

// ParseDate accepts either YYYY-MM-DD or DD-MM-YYYY
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ISODateLayout, s); err == nil {
		return t, nil
	}
	return ParseNAVDate(s)
}

// FormatNAVDate formats a date as DD-MM-YYYY
func FormatNAVDate(t time.Time) string {
	return t.Format(NAVDateLayout)
}

// CivilDate strips the clock and zone, keeping the calendar day at UTC midnight
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SubtractYears moves a date back by whole calendar years, keeping month and day.
// Feb 29 in a non-leap target year normalises to Mar 1.
func SubtractYears(date time.Time, years int) time.Time {
	return CivilDate(date).AddDate(-years, 0, 0)
}

// DaysBetween returns the absolute number of calendar days between two dates
func DaysBetween(a, b time.Time) float64 {
	d := CivilDate(a).Sub(CivilDate(b))
	return math.Abs(d.Hours() / hoursPerDay)
}
