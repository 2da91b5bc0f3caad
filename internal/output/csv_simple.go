package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/investa/finserve/internal/domain"
)

// CSVSummarizer writes one row per result figure, scenarios sorted by name.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(set *domain.ReportSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Kind", "Metric", "Value"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	reports := append([]domain.ScenarioReport(nil), set.Reports...)
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Name < reports[j].Name })
	for _, r := range reports {
		for _, a := range r.Result.Breakdown() {
			if err := w.Write([]string{r.Name, string(r.Kind), a.Label, amountToString(a.Value)}); err != nil {
				return nil, err
			}
		}
		if total, ok := r.Result.GrandTotal(); ok {
			if err := w.Write([]string{r.Name, string(r.Kind), totalLabel(r.Kind), amountToString(total)}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
