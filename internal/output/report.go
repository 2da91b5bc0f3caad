package output

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/investa/finserve/internal/domain"
)

// GenerateReport writes set to dir in the named format and returns the file
// path. "all" writes the verbose console report plus the detailed CSV.
func GenerateReport(set *domain.ReportSet, format, dir string) ([]string, error) {
	if format == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			name, err := WriteFormatted(f, set, dir, Extension(f.Name()))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	name, err := WriteFormatted(f, set, dir, Extension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// SaveScenarioSet writes scenarios as YAML, in the same shape the loader reads.
func SaveScenarioSet(set domain.ScenarioSet, filename string) error {
	b, err := yaml.Marshal(set)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
