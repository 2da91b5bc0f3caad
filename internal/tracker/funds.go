package tracker

import (
	"fmt"
	"strings"

	"github.com/investa/finserve/internal/domain"
)

// ListKind names a curated fund list
type ListKind string

const (
	ListPopular       ListKind = "popular"
	ListTopPerforming ListKind = "top"
)

// DefaultList is the list shown first
const DefaultList = ListTopPerforming

// DefaultWindow is the return window shown first
const DefaultWindow = domain.Window3Y

var popularFunds = []domain.Fund{
	{Code: 122639, Name: "Parag Parikh Flexi Cap", Category: "Flexi Cap Fund"},
	{Code: 119835, Name: "SBI Contra Fund", Category: "Contra Fund"},
	{Code: 118955, Name: "HDFC Flexi Cap Fund", Category: "Flexi Cap Fund"},
	{Code: 120586, Name: "ICICI Pru Large Cap", Category: "Large Cap Fund"},
	{Code: 147704, Name: "Motilal Oswal Large & Mid", Category: "Large & Mid Cap"},
}

var topPerformingFunds = []domain.Fund{
	{Code: 120828, Name: "Quant Small Cap", Category: "Small Cap Fund"},
	{Code: 118778, Name: "Nippon India Small Cap", Category: "Small Cap Fund"},
	{Code: 127042, Name: "Motilal Oswal Midcap", Category: "Mid Cap Fund"},
	{Code: 119835, Name: "SBI Contra Fund", Category: "Contra Fund"},
	{Code: 122639, Name: "Parag Parikh Flexi Cap", Category: "Flexi Cap Fund"},
}

// Title returns the label shown to users
func (l ListKind) Title() string {
	switch l {
	case ListPopular:
		return "Popular"
	case ListTopPerforming:
		return "Top Performing"
	}
	return string(l)
}

// ParseListKind accepts "popular", "top" or the display titles
func ParseListKind(s string) (ListKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultList, nil
	case "top", "top performing", "top-performing":
		return ListTopPerforming, nil
	case "popular":
		return ListPopular, nil
	}
	return "", fmt.Errorf("%w: unknown fund list %q", domain.ErrInvalidInput, s)
}

// Funds returns a copy of the named list
func Funds(list ListKind) []domain.Fund {
	switch list {
	case ListPopular:
		return append([]domain.Fund(nil), popularFunds...)
	case ListTopPerforming:
		return append([]domain.Fund(nil), topPerformingFunds...)
	}
	return nil
}

// DistinctFunds merges every list, keeping the first occurrence of each code
func DistinctFunds() []domain.Fund {
	seen := make(map[int]bool)
	var out []domain.Fund
	for _, list := range [][]domain.Fund{popularFunds, topPerformingFunds} {
		for _, f := range list {
			if seen[f.Code] {
				continue
			}
			seen[f.Code] = true
			out = append(out, f)
		}
	}
	return out
}
