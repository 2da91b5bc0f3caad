package output

import (
	"fmt"
	"strconv"

	money "github.com/investa/finserve/pkg/decimal"
)

// FormatCurrency formats an amount in whole rupees with Indian digit grouping.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string { return money.NewMoney(amount).Format() }

// FormatCompactCurrency formats large amounts in lakh/crore units.
func FormatCompactCurrency(amount float64) string { return money.NewMoney(amount).FormatCompact() }

// FormatPercentage formats a percentage with 2 decimals.
func FormatPercentage(pct float64) string { return fmt.Sprintf("%.2f%%", pct) }

// FormatReturn formats an optional return; nil means the fund is too young.
func FormatReturn(pct *float64) string {
	if pct == nil {
		return "N/A"
	}
	return FormatPercentage(*pct)
}

// FormatNAV formats a NAV with four decimals, or "-" before the first fetch.
func FormatNAV(nav *float64) string {
	if nav == nil {
		return "-"
	}
	return strconv.FormatFloat(*nav, 'f', 4, 64)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func amountToString(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
