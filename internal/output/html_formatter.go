package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/investa/finserve/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
	"inputs": describeInput,
	"notes":  resultNotes,
	"total": func(res domain.CalculationResult) []string {
		if v, ok := res.GrandTotal(); ok {
			return []string{totalLabel(res.Kind()), FormatCurrency(v)}
		}
		return nil
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(set *domain.ReportSet) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ReportSet
		Assumptions []string
	}{set, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
