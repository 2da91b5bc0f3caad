package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/investa/finserve/internal/domain"
)

// WriteFundTable prints fund snapshots with their trailing returns.
// Returns over one year are annualized.
func WriteFundTable(w io.Writer, snapshots []domain.FundSnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "Code\tFund\tCategory\tNAV\tAs of\t")
	for _, win := range domain.StandardWindows() {
		fmt.Fprintf(tw, "%s\t", win.Label())
	}
	fmt.Fprintln(tw)

	for _, s := range snapshots {
		asOf := "-"
		if !s.AsOf.IsZero() {
			asOf = s.AsOf.Format("02-01-2006")
		}
		name := s.Fund.Name
		if s.Error {
			name += " (stale)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t", s.Fund.Code, name, s.Fund.Category, FormatNAV(s.CurrentNAV), asOf)
		for _, win := range domain.StandardWindows() {
			fmt.Fprintf(tw, "%s\t", FormatReturn(s.Returns[win]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
