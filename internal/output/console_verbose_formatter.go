package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/investa/finserve/internal/calculation"
	"github.com/investa/finserve/internal/domain"
)

// ConsoleVerboseFormatter prints each scenario's inputs, result and yearly schedule.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(set *domain.ReportSet) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 72)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "INVESTA FINSERVE - INVESTMENT PROJECTIONS")
	fmt.Fprintln(&buf, rule)
	if !set.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", set.GeneratedAt.Format("02 Jan 2006 15:04"))
	}

	for _, r := range set.Reports {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s (%s)\n", r.Name, r.Kind.Title())
		fmt.Fprintln(&buf, strings.Repeat("-", 72))

		fmt.Fprintln(&buf, "Inputs:")
		for _, line := range describeInput(r.Input) {
			fmt.Fprintf(&buf, "  %-32s %s\n", line[0], line[1])
		}

		fmt.Fprintln(&buf, "Result:")
		for _, a := range r.Result.Breakdown() {
			fmt.Fprintf(&buf, "  %-32s %s\n", a.Label, FormatCurrency(a.Value))
		}
		if total, ok := r.Result.GrandTotal(); ok {
			fmt.Fprintf(&buf, "  %-32s %s\n", totalLabel(r.Kind), FormatCurrency(total))
		}
		for _, note := range resultNotes(r.Result) {
			fmt.Fprintf(&buf, "  * %s\n", note)
		}

		if len(r.Schedule) > 0 {
			fmt.Fprintln(&buf, "Schedule:")
			fmt.Fprintf(&buf, "  %4s  %18s  %18s  %18s\n", "Year", "Invested", scheduleValueLabel(r.Kind), "Withdrawn")
			for _, p := range r.Schedule {
				fmt.Fprintf(&buf, "  %4d  %18s  %18s  %18s\n", p.Year, FormatCurrency(p.Invested), FormatCurrency(p.Value), FormatCurrency(p.Withdrawn))
			}
		}
	}
	return buf.Bytes(), nil
}

func totalLabel(kind domain.ScenarioKind) string {
	switch kind {
	case domain.KindSWP:
		return "Final Balance"
	case domain.KindRetirement:
		return "Target Corpus"
	}
	return "Total Value"
}

func scheduleValueLabel(kind domain.ScenarioKind) string {
	if kind == domain.KindRetirement {
		return "Corpus Needed"
	}
	return "Value"
}

func resultNotes(res domain.CalculationResult) []string {
	switch r := res.(type) {
	case domain.SWPResult:
		if r.Exhausted {
			return []string{fmt.Sprintf("Corpus exhausted after %d months", r.MonthsFunded)}
		}
	case domain.RetirementResult:
		return []string{
			fmt.Sprintf("%d years to retirement", r.YearsToRetire),
			fmt.Sprintf("Sized at a %.0f%% safe withdrawal rate", calculation.SafeWithdrawalRate*100),
		}
	case domain.STPResult:
		notes := []string{fmt.Sprintf("Debt %s / Equity %s", FormatCurrency(r.DebtBalance), FormatCurrency(r.EquityBalance))}
		if r.SourceExhaustedMonth > 0 {
			notes = append(notes, fmt.Sprintf("Debt fund fully transferred in month %d", r.SourceExhaustedMonth))
		}
		return notes
	}
	return nil
}

// describeInput lists an input's parameters as label/value pairs.
func describeInput(in domain.CalculationInput) [][2]string {
	pct := func(v float64) string { return FormatPercentage(v) }
	yrs := func(v int) string { return fmt.Sprintf("%d years", v) }
	switch v := in.(type) {
	case domain.SIPInput:
		return [][2]string{
			{"Monthly Investment", FormatCurrency(v.MonthlyContribution)},
			{"Expected Return (p.a.)", pct(v.AnnualRatePercent)},
			{"Time Period", yrs(v.Years)},
		}
	case domain.LumpsumInput:
		return [][2]string{
			{"Total Investment", FormatCurrency(v.Principal)},
			{"Expected Return (p.a.)", pct(v.AnnualRatePercent)},
			{"Time Period", yrs(v.Years)},
		}
	case domain.SWPInput:
		return [][2]string{
			{"Total Investment", FormatCurrency(v.Principal)},
			{"Withdrawal per Month", FormatCurrency(v.MonthlyWithdrawal)},
			{"Expected Return (p.a.)", pct(v.AnnualRatePercent)},
			{"Time Period", yrs(v.Years)},
		}
	case domain.StepUpInput:
		return [][2]string{
			{"Monthly Investment", FormatCurrency(v.InitialMonthlyContribution)},
			{"Annual Step-up Rate", pct(v.AnnualStepUpPercent)},
			{"Expected Return (p.a.)", pct(v.AnnualRatePercent)},
			{"Time Period", yrs(v.Years)},
		}
	case domain.RetirementInput:
		return [][2]string{
			{"Current Age", fmt.Sprintf("%d", v.CurrentAge)},
			{"Retirement Age", fmt.Sprintf("%d", v.RetirementAge)},
			{"Current Monthly Expenses", FormatCurrency(v.CurrentMonthlyExpenses)},
			{"Expected Inflation (p.a.)", pct(v.AnnualInflationPercent)},
		}
	case domain.STPInput:
		return [][2]string{
			{"Total Investment (Debt)", FormatCurrency(v.InitialDebtPrincipal)},
			{"Monthly Transfer", FormatCurrency(v.MonthlyTransferAmount)},
			{"Debt Fund Return (p.a.)", pct(v.DebtAnnualRatePercent)},
			{"Equity Fund Return (p.a.)", pct(v.EquityAnnualRatePercent)},
			{"Time Period", yrs(v.Years)},
		}
	}
	return nil
}
