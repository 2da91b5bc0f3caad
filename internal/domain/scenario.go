package domain

import (
	"fmt"
	"strings"
)

// ScenarioKind identifies one of the calculator scenarios
type ScenarioKind string

const (
	KindSIP        ScenarioKind = "sip"
	KindLumpsum    ScenarioKind = "lumpsum"
	KindSWP        ScenarioKind = "swp"
	KindStepUp     ScenarioKind = "stepup"
	KindRetirement ScenarioKind = "retirement"
	KindSTP        ScenarioKind = "stp"
)

// AllScenarioKinds returns every kind in display order.
func AllScenarioKinds() []ScenarioKind {
	return []ScenarioKind{KindSIP, KindLumpsum, KindSWP, KindStepUp, KindSTP, KindRetirement}
}

// Title returns the label shown to users
func (k ScenarioKind) Title() string {
	switch k {
	case KindSIP:
		return "SIP"
	case KindLumpsum:
		return "Lumpsum"
	case KindSWP:
		return "SWP"
	case KindStepUp:
		return "Step-up"
	case KindRetirement:
		return "Retirement"
	case KindSTP:
		return "STP"
	}
	return string(k)
}

// ParseScenarioKind accepts canonical kinds as well as display labels such as "Step-up".
func ParseScenarioKind(s string) (ScenarioKind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	for _, k := range AllScenarioKinds() {
		if n == string(k) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown scenario kind %q", ErrInvalidInput, s)
}

// CalculationInput is the closed set of scenario parameter records.
// Only types in this package implement it.
type CalculationInput interface {
	Kind() ScenarioKind
	Validate() error
	isCalculationInput()
}

// SIPInput is a fixed monthly contribution
type SIPInput struct {
	MonthlyContribution float64 `yaml:"monthly_contribution" json:"monthly_contribution"`
	AnnualRatePercent   float64 `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years               int     `yaml:"years" json:"years"`
}

// LumpsumInput is a one-time investment compounded annually
type LumpsumInput struct {
	Principal         float64 `yaml:"principal" json:"principal"`
	AnnualRatePercent float64 `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years             int     `yaml:"years" json:"years"`
}

// SWPInput is a fixed monthly withdrawal from an invested corpus
type SWPInput struct {
	Principal         float64 `yaml:"principal" json:"principal"`
	MonthlyWithdrawal float64 `yaml:"monthly_withdrawal" json:"monthly_withdrawal"`
	AnnualRatePercent float64 `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years             int     `yaml:"years" json:"years"`
}

// StepUpInput is a SIP whose contribution grows every year
type StepUpInput struct {
	InitialMonthlyContribution float64 `yaml:"initial_monthly_contribution" json:"initial_monthly_contribution"`
	AnnualStepUpPercent        float64 `yaml:"annual_step_up_percent" json:"annual_step_up_percent"`
	AnnualRatePercent          float64 `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	Years                      int     `yaml:"years" json:"years"`
}

// RetirementInput sizes the corpus needed at retirement
type RetirementInput struct {
	CurrentAge             int     `yaml:"current_age" json:"current_age"`
	RetirementAge          int     `yaml:"retirement_age" json:"retirement_age"`
	CurrentMonthlyExpenses float64 `yaml:"current_monthly_expenses" json:"current_monthly_expenses"`
	AnnualInflationPercent float64 `yaml:"annual_inflation_percent" json:"annual_inflation_percent"`
}

// STPInput moves a fixed amount each month from a debt balance to an equity balance
type STPInput struct {
	InitialDebtPrincipal    float64 `yaml:"initial_debt_principal" json:"initial_debt_principal"`
	MonthlyTransferAmount   float64 `yaml:"monthly_transfer_amount" json:"monthly_transfer_amount"`
	DebtAnnualRatePercent   float64 `yaml:"debt_annual_rate_percent" json:"debt_annual_rate_percent"`
	EquityAnnualRatePercent float64 `yaml:"equity_annual_rate_percent" json:"equity_annual_rate_percent"`
	Years                   int     `yaml:"years" json:"years"`
}

func (SIPInput) Kind() ScenarioKind        { return KindSIP }
func (LumpsumInput) Kind() ScenarioKind    { return KindLumpsum }
func (SWPInput) Kind() ScenarioKind        { return KindSWP }
func (StepUpInput) Kind() ScenarioKind     { return KindStepUp }
func (RetirementInput) Kind() ScenarioKind { return KindRetirement }
func (STPInput) Kind() ScenarioKind        { return KindSTP }

func (SIPInput) isCalculationInput()        {}
func (LumpsumInput) isCalculationInput()    {}
func (SWPInput) isCalculationInput()        {}
func (StepUpInput) isCalculationInput()     {}
func (RetirementInput) isCalculationInput() {}
func (STPInput) isCalculationInput()        {}

// DecodeInput builds the concrete input for kind, letting decode fill it in.
// decode is typically a json.Unmarshal or yaml.Node.Decode closure.
func DecodeInput(kind ScenarioKind, decode func(v any) error) (CalculationInput, error) {
	var (
		target any
		deref  func() CalculationInput
	)
	switch kind {
	case KindSIP:
		in := &SIPInput{}
		target, deref = in, func() CalculationInput { return *in }
	case KindLumpsum:
		in := &LumpsumInput{}
		target, deref = in, func() CalculationInput { return *in }
	case KindSWP:
		in := &SWPInput{}
		target, deref = in, func() CalculationInput { return *in }
	case KindStepUp:
		in := &StepUpInput{}
		target, deref = in, func() CalculationInput { return *in }
	case KindRetirement:
		in := &RetirementInput{}
		target, deref = in, func() CalculationInput { return *in }
	case KindSTP:
		in := &STPInput{}
		target, deref = in, func() CalculationInput { return *in }
	default:
		return nil, fmt.Errorf("%w: unknown scenario kind %q", ErrInvalidInput, kind)
	}
	if err := decode(target); err != nil {
		return nil, fmt.Errorf("decode %s parameters: %w", kind, err)
	}
	return deref(), nil
}

// DefaultInput returns the calculator's opening values for a kind.
func DefaultInput(kind ScenarioKind) (CalculationInput, error) {
	switch kind {
	case KindSIP:
		return SIPInput{MonthlyContribution: 5000, AnnualRatePercent: 12, Years: 10}, nil
	case KindLumpsum:
		return LumpsumInput{Principal: 100000, AnnualRatePercent: 12, Years: 10}, nil
	case KindSWP:
		return SWPInput{Principal: 100000, MonthlyWithdrawal: 5000, AnnualRatePercent: 12, Years: 10}, nil
	case KindStepUp:
		return StepUpInput{InitialMonthlyContribution: 5000, AnnualStepUpPercent: 10, AnnualRatePercent: 12, Years: 10}, nil
	case KindRetirement:
		return RetirementInput{CurrentAge: 30, RetirementAge: 60, CurrentMonthlyExpenses: 50000, AnnualInflationPercent: 6}, nil
	case KindSTP:
		return STPInput{InitialDebtPrincipal: 100000, MonthlyTransferAmount: 5000, DebtAnnualRatePercent: 6, EquityAnnualRatePercent: 12, Years: 10}, nil
	}
	return nil, fmt.Errorf("%w: unknown scenario kind %q", ErrInvalidInput, kind)
}
