package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/investa/finserve/internal/domain"
)

// ErrUnknownScenario is returned for inputs the engine has no formula for
var ErrUnknownScenario = errors.New("unknown scenario")

// Engine validates scenario inputs and runs the matching projection
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Run validates input and computes its result
func (e *Engine) Run(ctx context.Context, input domain.CalculationInput) (domain.CalculationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, fmt.Errorf("%w: no input", domain.ErrInvalidInput)
	}
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", input.Kind().Title(), err)
	}
	result, err := Compute(input)
	if err != nil {
		return nil, err
	}
	if !finiteResult(result) {
		return nil, fmt.Errorf("%s: %w", input.Kind().Title(), &domain.ValidationError{
			Field:   growthField(input.Kind()),
			Message: "is too large for the period, the projection overflows",
		})
	}
	if total, ok := result.GrandTotal(); ok {
		e.Logger.Debugf("computed %s: total=%.2f", input.Kind(), total)
	}
	return result, nil
}

// RunScenario computes a named scenario along with its year-by-year schedule
func (e *Engine) RunScenario(ctx context.Context, ns domain.NamedScenario) (domain.ScenarioReport, error) {
	result, err := e.Run(ctx, ns.Input)
	if err != nil {
		return domain.ScenarioReport{}, fmt.Errorf("scenario %q: %w", ns.Name, err)
	}
	name := ns.Name
	if name == "" {
		name = ns.Input.Kind().Title()
	}
	return domain.ScenarioReport{
		Name:     name,
		Kind:     ns.Input.Kind(),
		Input:    ns.Input,
		Result:   result,
		Schedule: Schedule(ns.Input),
	}, nil
}

// RunAll computes every scenario in order, stopping at the first failure
func (e *Engine) RunAll(ctx context.Context, scenarios []domain.NamedScenario) (*domain.ReportSet, error) {
	set := &domain.ReportSet{GeneratedAt: nowFunc(), Reports: make([]domain.ScenarioReport, 0, len(scenarios))}
	for _, ns := range scenarios {
		report, err := e.RunScenario(ctx, ns)
		if err != nil {
			return nil, err
		}
		set.Reports = append(set.Reports, report)
	}
	e.Logger.Infof("computed %d scenarios", len(set.Reports))
	return set, nil
}

// Compute dispatches to the projection for the input's kind. It assumes the
// input has already been validated.
func Compute(input domain.CalculationInput) (domain.CalculationResult, error) {
	switch in := input.(type) {
	case domain.SIPInput:
		return SIP(in), nil
	case domain.LumpsumInput:
		return Lumpsum(in), nil
	case domain.SWPInput:
		return SWP(in), nil
	case domain.StepUpInput:
		return StepUp(in), nil
	case domain.RetirementInput:
		return Retirement(in), nil
	case domain.STPInput:
		return STP(in), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownScenario, input)
}

// Schedule returns the year-end state of a scenario, starting at year 0.
// Retirement schedules track the corpus required as expenses inflate.
func Schedule(input domain.CalculationInput) []domain.SchedulePoint {
	var schedule []domain.SchedulePoint
	switch in := input.(type) {
	case domain.SIPInput:
		_, schedule = sipProjection(in)
	case domain.LumpsumInput:
		_, schedule = lumpsumProjection(in)
	case domain.SWPInput:
		_, schedule = swpProjection(in)
	case domain.StepUpInput:
		_, schedule = stepUpProjection(in)
	case domain.RetirementInput:
		_, schedule = retirementProjection(in)
	case domain.STPInput:
		_, schedule = stpProjection(in)
	}
	return schedule
}

func finiteResult(result domain.CalculationResult) bool {
	if total, ok := result.GrandTotal(); ok && !isFinite(total) {
		return false
	}
	for _, a := range result.Breakdown() {
		if !isFinite(a.Value) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// growthField names the input that drives compounding for each kind
func growthField(kind domain.ScenarioKind) string {
	switch kind {
	case domain.KindSTP:
		return "equity_annual_rate_percent"
	case domain.KindRetirement:
		return "annual_inflation_percent"
	}
	return "annual_rate_percent"
}
