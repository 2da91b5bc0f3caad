package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/investa/finserve/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario set from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates scenario YAML
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioSet, error) {
	var set domain.ScenarioSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenarioSet(&set); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &set, nil
}

// ValidateScenarioSet validates every scenario in the set
func (ip *InputParser) ValidateScenarioSet(set *domain.ScenarioSet) error {
	if len(set.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]int, len(set.Scenarios))
	for i, scenario := range set.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		key := strings.ToLower(strings.TrimSpace(scenario.Name))
		if key == "" {
			continue
		}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("scenario %d: name %q already used by scenario %d", i, scenario.Name, prev)
		}
		seen[key] = i
	}
	return nil
}

func (ip *InputParser) validateScenario(scenario *domain.NamedScenario) error {
	if scenario.Input == nil {
		return fmt.Errorf("scenario %q has no parameters", scenario.Name)
	}
	if err := scenario.Input.Validate(); err != nil {
		return fmt.Errorf("%s: %w", scenario.Input.Kind().Title(), err)
	}
	return nil
}

// CreateExampleScenarioSet returns one scenario per calculator with its opening values
func (ip *InputParser) CreateExampleScenarioSet() *domain.ScenarioSet {
	set := &domain.ScenarioSet{}
	for _, kind := range domain.AllScenarioKinds() {
		input, err := domain.DefaultInput(kind)
		if err != nil {
			continue
		}
		set.Scenarios = append(set.Scenarios, domain.NamedScenario{
			Name:  kind.Title() + " example",
			Input: input,
		})
	}
	return set
}
