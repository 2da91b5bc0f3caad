package output

import (
	"fmt"

	"github.com/investa/finserve/internal/calculation"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Rates are nominal annual percentages compounded monthly",
	"SIP and step-up contributions are made at the start of each month",
	"Lumpsum investments compound once a year",
	fmt.Sprintf("Retirement corpus sized at a %.0f%% safe withdrawal rate", calculation.SafeWithdrawalRate*100),
	"Projections are illustrative and ignore taxes, exit loads and expense ratios",
}
