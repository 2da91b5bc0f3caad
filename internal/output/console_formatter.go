package output

import (
	"bytes"
	"fmt"

	"github.com/investa/finserve/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(set *domain.ReportSet) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INVESTMENT SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, r := range set.Reports {
		fmt.Fprintf(&buf, "%s [%s]:", r.Name, r.Kind.Title())
		for _, a := range r.Result.Breakdown() {
			fmt.Fprintf(&buf, " %s=%s", a.Label, FormatCurrency(a.Value))
		}
		if total, ok := r.Result.GrandTotal(); ok {
			fmt.Fprintf(&buf, " Total=%s", FormatCurrency(total))
		}
		fmt.Fprintln(&buf)
	}
	return buf.Bytes(), nil
}
