package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/investa/finserve/internal/domain"
)

// CSVDetailedExporter provides the yearly schedule per scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(set *domain.ReportSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Kind", "Year", "Invested", "Value", "Withdrawn", "Final"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	reports := append([]domain.ScenarioReport(nil), set.Reports...)
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Name < reports[j].Name })
	for _, r := range reports {
		for i, p := range r.Schedule {
			row := []string{
				r.Name,
				string(r.Kind),
				intToString(p.Year),
				amountToString(p.Invested),
				amountToString(p.Value),
				amountToString(p.Withdrawn),
				boolToString(i == len(r.Schedule)-1),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
