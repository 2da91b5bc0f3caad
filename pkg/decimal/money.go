package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes every formatted amount
const RupeeSymbol = "₹"

var (
	lakh  = decimal.NewFromInt(100_000)
	crore = decimal.NewFromInt(10_000_000)
)

// Money represents a rupee amount with decimal precision for display
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to paise
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Rupees rounds to whole rupees
func (m Money) Rupees() Money {
	return Money{m.Decimal.Round(0)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// String returns the plain amount with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders whole rupees with Indian digit grouping, e.g. ₹11,61,695.
func (m Money) Format() string {
	return formatGrouped(m.Decimal.Round(0).StringFixed(0))
}

// FormatPaise renders the amount with two decimals and Indian digit grouping.
func (m Money) FormatPaise() string {
	s := m.Decimal.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	return formatGrouped(whole) + "." + frac
}

// FormatCompact renders large amounts in lakh (L) or crore (Cr) units.
func (m Money) FormatCompact() string {
	abs := m.Decimal.Abs()
	sign := ""
	if m.Decimal.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(crore):
		return sign + RupeeSymbol + abs.Div(crore).StringFixed(2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return sign + RupeeSymbol + abs.Div(lakh).StringFixed(2) + " L"
	default:
		return m.Format()
	}
}

// formatGrouped applies 3-2-2 grouping to an integer string that may carry a sign.
func formatGrouped(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}
	if digits == "0" {
		sign = ""
	}
	if len(digits) <= 3 {
		return sign + RupeeSymbol + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return sign + RupeeSymbol + strings.Join(groups, ",") + "," + tail
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}
