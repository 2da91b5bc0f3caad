package navdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/pkg/dateutil"
)

// ReadCSV reads a date,nav series. The header row is required; rows that do
// not parse are skipped.
func ReadCSV(r io.Reader) ([]domain.NavObservation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}
	dateCol, navCol := 0, 1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date":
			dateCol = i
		case "nav":
			navCol = i
		}
	}

	var series []domain.NavObservation
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		if len(record) <= dateCol || len(record) <= navCol {
			continue // Skip malformed rows
		}
		obs, err := parseObservation(record[dateCol], record[navCol])
		if err != nil {
			continue // Skip rows with invalid date or NAV
		}
		series = append(series, obs)
	}

	if len(series) == 0 {
		return nil, ErrNoData
	}
	return series, nil
}

// LoadCSV reads a series from a file
func LoadCSV(path string) ([]domain.NavObservation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	series, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// WriteCSV writes a series in the feed's DD-MM-YYYY date format
func WriteCSV(w io.Writer, series []domain.NavObservation) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "nav"}); err != nil {
		return err
	}
	for _, obs := range series {
		row := []string{dateutil.FormatNAVDate(obs.Date), formatNAV(obs.NAV)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
