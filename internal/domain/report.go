package domain

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// NamedScenario pairs a user-facing name with its inputs
type NamedScenario struct {
	Name  string
	Input CalculationInput
}

type namedScenarioYAML struct {
	Name   string    `yaml:"name"`
	Kind   string    `yaml:"kind"`
	Params yaml.Node `yaml:"params"`
}

// UnmarshalYAML decodes params into the input type selected by kind
func (ns *NamedScenario) UnmarshalYAML(value *yaml.Node) error {
	var raw namedScenarioYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	kind, err := ParseScenarioKind(raw.Kind)
	if err != nil {
		return fmt.Errorf("scenario %q: %w", raw.Name, err)
	}
	input, err := DecodeInput(kind, func(v any) error {
		if raw.Params.Kind == 0 {
			return fmt.Errorf("params are required")
		}
		return raw.Params.Decode(v)
	})
	if err != nil {
		return fmt.Errorf("scenario %q: %w", raw.Name, err)
	}
	ns.Name = raw.Name
	ns.Input = input
	return nil
}

// MarshalYAML writes the kind alongside the params
func (ns NamedScenario) MarshalYAML() (interface{}, error) {
	if ns.Input == nil {
		return nil, fmt.Errorf("scenario %q has no input", ns.Name)
	}
	return struct {
		Name   string           `yaml:"name"`
		Kind   ScenarioKind     `yaml:"kind"`
		Params CalculationInput `yaml:"params"`
	}{ns.Name, ns.Input.Kind(), ns.Input}, nil
}

// ScenarioSet is the contents of a scenario file
type ScenarioSet struct {
	Scenarios []NamedScenario `yaml:"scenarios"`
}

// ScenarioReport is a computed scenario ready for formatting
type ScenarioReport struct {
	Name     string            `json:"name"`
	Kind     ScenarioKind      `json:"kind"`
	Input    CalculationInput  `json:"input"`
	Result   CalculationResult `json:"result"`
	Schedule []SchedulePoint   `json:"schedule,omitempty"`
}

// ReportSet groups the reports produced in one run
type ReportSet struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Reports     []ScenarioReport `json:"reports"`
}
