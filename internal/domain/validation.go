package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every validation failure
var ErrInvalidInput = errors.New("invalid input")

const (
	// MaxYears bounds every duration input
	MaxYears = 100
	// MaxAge bounds age inputs
	MaxAge = 120
	// MinRatePercent is the exclusive lower bound for any annual percentage
	MinRatePercent = -100.0
)

// ValidationError describes a single rejected field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func requirePositive(field string, v float64) error {
	if !finite(v) || v <= 0 {
		return invalid(field, "must be a positive amount")
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if !finite(v) || v < 0 {
		return invalid(field, "cannot be negative")
	}
	return nil
}

func requireRate(field string, v float64) error {
	if !finite(v) {
		return invalid(field, "must be a finite percentage")
	}
	if v <= MinRatePercent {
		return invalid(field, "must be greater than %.0f%%", MinRatePercent)
	}
	return nil
}

func requireYears(field string, v int) error {
	if v < 1 || v > MaxYears {
		return invalid(field, "must be between 1 and %d", MaxYears)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Validate checks SIP parameters
func (in SIPInput) Validate() error {
	return firstError(
		requirePositive("monthly_contribution", in.MonthlyContribution),
		requireRate("annual_rate_percent", in.AnnualRatePercent),
		requireYears("years", in.Years),
	)
}

// Validate checks lumpsum parameters
func (in LumpsumInput) Validate() error {
	return firstError(
		requirePositive("principal", in.Principal),
		requireRate("annual_rate_percent", in.AnnualRatePercent),
		requireYears("years", in.Years),
	)
}

// Validate checks SWP parameters
func (in SWPInput) Validate() error {
	return firstError(
		requirePositive("principal", in.Principal),
		requirePositive("monthly_withdrawal", in.MonthlyWithdrawal),
		requireRate("annual_rate_percent", in.AnnualRatePercent),
		requireYears("years", in.Years),
	)
}

// Validate checks step-up SIP parameters
func (in StepUpInput) Validate() error {
	return firstError(
		requirePositive("initial_monthly_contribution", in.InitialMonthlyContribution),
		requireRate("annual_step_up_percent", in.AnnualStepUpPercent),
		requireRate("annual_rate_percent", in.AnnualRatePercent),
		requireYears("years", in.Years),
	)
}

// Validate checks retirement parameters. The retirement age must be strictly
// after the current age.
func (in RetirementInput) Validate() error {
	if in.CurrentAge < 0 || in.CurrentAge > MaxAge {
		return invalid("current_age", "must be between 0 and %d", MaxAge)
	}
	if in.RetirementAge < 1 || in.RetirementAge > MaxAge {
		return invalid("retirement_age", "must be between 1 and %d", MaxAge)
	}
	if in.RetirementAge <= in.CurrentAge {
		return invalid("retirement_age", "must be greater than current_age (%d)", in.CurrentAge)
	}
	return firstError(
		requireNonNegative("current_monthly_expenses", in.CurrentMonthlyExpenses),
		requireRate("annual_inflation_percent", in.AnnualInflationPercent),
	)
}

// Validate checks STP parameters
func (in STPInput) Validate() error {
	return firstError(
		requirePositive("initial_debt_principal", in.InitialDebtPrincipal),
		requirePositive("monthly_transfer_amount", in.MonthlyTransferAmount),
		requireRate("debt_annual_rate_percent", in.DebtAnnualRatePercent),
		requireRate("equity_annual_rate_percent", in.EquityAnnualRatePercent),
		requireYears("years", in.Years),
	)
}
