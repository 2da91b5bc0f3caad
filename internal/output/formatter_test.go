package output

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investa/finserve/internal/calculation"
	"github.com/investa/finserve/internal/domain"
)

func buildTestReportSet(t *testing.T) *domain.ReportSet {
	t.Helper()
	calc := calculation.NewEngine()
	var reports []domain.ScenarioReport
	for _, ns := range []domain.NamedScenario{
		{Name: "B Retirement", Input: domain.RetirementInput{CurrentAge: 30, RetirementAge: 60, CurrentMonthlyExpenses: 50000, AnnualInflationPercent: 6}},
		{Name: "A Child education", Input: domain.SIPInput{MonthlyContribution: 5000, AnnualRatePercent: 12, Years: 10}},
		{Name: "C Pension", Input: domain.SWPInput{Principal: 100000, MonthlyWithdrawal: 5000, AnnualRatePercent: 12, Years: 3}},
	} {
		r, err := calc.RunScenario(context.Background(), ns)
		require.NoError(t, err)
		reports = append(reports, r)
	}
	return &domain.ReportSet{
		GeneratedAt: time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC),
		Reports:     reports,
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReportSet(t))
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "INVESTMENT SCENARIO SUMMARY"))
	assert.Contains(t, content, "A Child education [SIP]: Invested Amount=₹6,00,000 Est. Returns=₹5,61,695 Total=₹11,61,695")
	assert.Contains(t, content, "Target Corpus=₹8,61,52,368")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReportSet(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "INVESTA FINSERVE - INVESTMENT PROJECTIONS")
	assert.Contains(t, content, "Generated: 01 Apr 2025 09:30")
	assert.Contains(t, content, "Monthly Investment")
	assert.Contains(t, content, "Corpus exhausted after 23 months")
	assert.Contains(t, content, "30 years to retirement")
	assert.Contains(t, content, "Corpus Needed")
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReportSet(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1+3+3+4)
	assert.Equal(t, "Scenario,Kind,Metric,Value", lines[0])
	assert.Equal(t, "A Child education,sip,Invested Amount,600000.00", lines[1])
	assert.True(t, strings.HasPrefix(lines[4], "B Retirement,"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "C Pension,swp,Final Balance,"))
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReportSet(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	// 11 SIP rows, 31 retirement rows, 4 SWP rows
	require.Len(t, lines, 1+11+31+4)
	assert.Equal(t, "A Child education,sip,0,0.00,0.00,0.00,false", lines[1])
	assert.Equal(t, "A Child education,sip,10,600000.00,1161695.38,0.00,true", lines[11])
	assert.Equal(t, "C Pension,swp,3,100000.00,0.00,115000.00,true", lines[len(lines)-1])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReportSet(t))
	require.NoError(t, err)
	var decoded struct {
		GeneratedAt time.Time `json:"generated_at"`
		Reports     []struct {
			Name   string         `json:"name"`
			Kind   string         `json:"kind"`
			Input  map[string]any `json:"input"`
			Result map[string]any `json:"result"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Reports, 3)
	assert.Equal(t, "sip", decoded.Reports[1].Kind)
	assert.Equal(t, 5000.0, decoded.Reports[1].Input["monthly_contribution"])
	assert.InDelta(t, 1161695.38, decoded.Reports[1].Result["future_value"], 0.01)
	assert.Equal(t, true, decoded.Reports[2].Result["exhausted"])
}

func TestHTMLFormatter(t *testing.T) {
	set := buildTestReportSet(t)
	set.Reports[1].Name = "<b>Education</b>"
	out, err := HTMLFormatter{}.Format(set)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Scenario Summary")
	assert.Contains(t, content, "Key Assumptions")
	assert.Contains(t, content, DefaultAssumptions[0])
	assert.Contains(t, content, "₹11,61,695")
	assert.Contains(t, content, "&lt;b&gt;Education&lt;/b&gt;")
}

func TestFormatterAliasResolution(t *testing.T) {
	f := GetFormatterByName("console-verbose")
	require.NotNil(t, f)
	assert.Equal(t, "console", f.Name())

	f = GetFormatterByName(" CSV-Detailed ")
	require.NotNil(t, f)
	assert.Equal(t, "detailed-csv", f.Name())

	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, []string{"console", "console-lite", "csv", "detailed-csv", "html", "json"}, AvailableFormatterNames())
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "csv", Extension("detailed-csv"))
	assert.Equal(t, "txt", Extension("verbose"))
	assert.Equal(t, "json", Extension("json"))
	assert.Equal(t, "html", Extension("html-report"))
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := Render(&domain.ReportSet{}, "definitely-not-a-format")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "Try one of:")

	_, err = GenerateReport(&domain.ReportSet{}, "nope", t.TempDir())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	set := buildTestReportSet(t)

	files, err := GenerateReport(set, "json", dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "investa_report_20250401_093000.json"), files[0])

	files, err = GenerateReport(set, "all", dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.True(t, strings.HasSuffix(files[0], ".txt"))
	assert.True(t, strings.HasSuffix(files[1], ".csv"))
	for _, f := range files {
		_, err := os.Stat(f)
		assert.NoError(t, err)
	}
}

func TestSaveScenarioSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	set := domain.ScenarioSet{Scenarios: []domain.NamedScenario{
		{Name: "Bonus", Input: domain.LumpsumInput{Principal: 50000, AnnualRatePercent: 10, Years: 5}},
	}}
	require.NoError(t, SaveScenarioSet(set, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: lumpsum")
	assert.Contains(t, string(data), "principal: 50000")
}

func TestRenderScheduleChart(t *testing.T) {
	set := buildTestReportSet(t)
	for _, r := range set.Reports {
		img, err := RenderScheduleChart(r.Name, r.Kind, r.Schedule)
		require.NoError(t, err, r.Name)
		_, err = png.Decode(bytes.NewReader(img))
		assert.NoError(t, err)
	}

	_, err := RenderScheduleChart("short", domain.KindSIP, set.Reports[1].Schedule[:1])
	assert.Error(t, err)
}

func TestWriteFundTable(t *testing.T) {
	nav, ret := 78.1234, 21.5
	snaps := []domain.FundSnapshot{
		{
			Fund:       domain.Fund{Code: 122639, Name: "Parag Parikh Flexi Cap", Category: "Flexi Cap Fund"},
			CurrentNAV: &nav,
			AsOf:       time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Returns:    map[domain.ReturnWindow]*float64{domain.Window1Y: &ret},
		},
		{Fund: domain.Fund{Code: 147704, Name: "Motilal Oswal Large & Mid"}, Error: true},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteFundTable(&buf, snaps))
	out := buf.String()
	assert.Contains(t, out, "Parag Parikh Flexi Cap")
	assert.Contains(t, out, "78.1234")
	assert.Contains(t, out, "14-06-2024")
	assert.Contains(t, out, "21.50%")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "(stale)")
}
