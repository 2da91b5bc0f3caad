package calculation

import (
	"math"

	"github.com/investa/finserve/internal/domain"
)

// SafeWithdrawalRate is the annual drawdown used to size a retirement corpus.
const SafeWithdrawalRate = 0.04

const monthsPerYear = 12

func monthlyRate(annualPercent float64) float64 {
	return annualPercent / monthsPerYear / 100
}

// annuityDue returns the value after n months of contributions made at the
// start of each month. A zero rate degenerates to plain accumulation.
// The growth factor goes through Log1p/Expm1 so tiny rates keep their precision.
func annuityDue(contribution, rate float64, n int) float64 {
	if rate == 0 {
		return contribution * float64(n)
	}
	factor := math.Expm1(float64(n)*math.Log1p(rate)) / rate
	return contribution * factor * (1 + rate)
}

// SIP projects a fixed monthly contribution.
func SIP(in domain.SIPInput) domain.GrowthResult {
	result, _ := sipProjection(in)
	return result
}

func sipProjection(in domain.SIPInput) (domain.GrowthResult, []domain.SchedulePoint) {
	r := monthlyRate(in.AnnualRatePercent)
	schedule := make([]domain.SchedulePoint, 0, in.Years+1)
	for y := 0; y <= in.Years; y++ {
		months := y * monthsPerYear
		schedule = append(schedule, domain.SchedulePoint{
			Year:     y,
			Invested: in.MonthlyContribution * float64(months),
			Value:    annuityDue(in.MonthlyContribution, r, months),
		})
	}
	last := schedule[len(schedule)-1]
	return growth(domain.KindSIP, last.Invested, last.Value), schedule
}

// Lumpsum compounds a single investment annually.
func Lumpsum(in domain.LumpsumInput) domain.GrowthResult {
	result, _ := lumpsumProjection(in)
	return result
}

func lumpsumProjection(in domain.LumpsumInput) (domain.GrowthResult, []domain.SchedulePoint) {
	growthFactor := 1 + in.AnnualRatePercent/100
	schedule := make([]domain.SchedulePoint, 0, in.Years+1)
	for y := 0; y <= in.Years; y++ {
		schedule = append(schedule, domain.SchedulePoint{
			Year:     y,
			Invested: in.Principal,
			Value:    in.Principal * math.Pow(growthFactor, float64(y)),
		})
	}
	return growth(domain.KindLumpsum, in.Principal, schedule[len(schedule)-1].Value), schedule
}

// SWP withdraws a fixed amount each month until the period ends or the
// balance runs out. The month that exhausts the corpus still counts its
// full withdrawal.
func SWP(in domain.SWPInput) domain.SWPResult {
	result, _ := swpProjection(in)
	return result
}

func swpProjection(in domain.SWPInput) (domain.SWPResult, []domain.SchedulePoint) {
	r := monthlyRate(in.AnnualRatePercent)
	months := in.Years * monthsPerYear

	result := domain.SWPResult{TotalInvested: in.Principal}
	schedule := []domain.SchedulePoint{{Year: 0, Invested: in.Principal, Value: in.Principal}}

	balance := in.Principal
	for i := 0; i < months && !result.Exhausted; i++ {
		balance = balance*(1+r) - in.MonthlyWithdrawal
		result.TotalWithdrawn += in.MonthlyWithdrawal
		result.MonthsFunded = i + 1
		if balance < 0 {
			balance = 0
			result.Exhausted = true
		}
		if (i+1)%monthsPerYear == 0 {
			schedule = append(schedule, domain.SchedulePoint{
				Year:      (i + 1) / monthsPerYear,
				Invested:  in.Principal,
				Value:     balance,
				Withdrawn: result.TotalWithdrawn,
			})
		}
	}
	result.FinalBalance = balance

	// pad the remaining years once the corpus is gone
	for y := len(schedule); y <= in.Years; y++ {
		schedule = append(schedule, domain.SchedulePoint{
			Year:      y,
			Invested:  in.Principal,
			Withdrawn: result.TotalWithdrawn,
		})
	}
	return result, schedule
}

// StepUp projects a SIP whose contribution rises once a year. Each year's
// contributions are valued at year end with the monthly annuity formula while
// the balance carried in from earlier years compounds at the annual rate.
func StepUp(in domain.StepUpInput) domain.GrowthResult {
	result, _ := stepUpProjection(in)
	return result
}

func stepUpProjection(in domain.StepUpInput) (domain.GrowthResult, []domain.SchedulePoint) {
	r := monthlyRate(in.AnnualRatePercent)
	annualGrowth := 1 + in.AnnualRatePercent/100

	contribution := in.InitialMonthlyContribution
	var invested, value float64
	schedule := make([]domain.SchedulePoint, 0, in.Years+1)
	schedule = append(schedule, domain.SchedulePoint{Year: 0})

	for y := 0; y < in.Years; y++ {
		value = value*annualGrowth + annuityDue(contribution, r, monthsPerYear)
		invested += contribution * monthsPerYear
		contribution += contribution * in.AnnualStepUpPercent / 100
		schedule = append(schedule, domain.SchedulePoint{Year: y + 1, Invested: invested, Value: value})
	}
	return growth(domain.KindStepUp, invested, value), schedule
}

// Retirement sizes the corpus that funds inflated expenses at the safe
// withdrawal rate.
func Retirement(in domain.RetirementInput) domain.RetirementResult {
	years := in.RetirementAge - in.CurrentAge
	if years < 1 {
		years = 1
	}
	monthly := in.CurrentMonthlyExpenses * math.Pow(1+in.AnnualInflationPercent/100, float64(years))
	return domain.RetirementResult{
		YearsToRetire:               years,
		MonthlyExpensesAtRetirement: monthly,
		TargetCorpus:                monthly * monthsPerYear / SafeWithdrawalRate,
	}
}

// retirementProjection tracks monthly expenses rising with inflation up to
// retirement. Value is the corpus those expenses would need.
func retirementProjection(in domain.RetirementInput) (domain.RetirementResult, []domain.SchedulePoint) {
	result := Retirement(in)
	factor := 1 + in.AnnualInflationPercent/100
	schedule := make([]domain.SchedulePoint, 0, result.YearsToRetire+1)
	for y := 0; y <= result.YearsToRetire; y++ {
		monthly := in.CurrentMonthlyExpenses * math.Pow(factor, float64(y))
		schedule = append(schedule, domain.SchedulePoint{
			Year:  y,
			Value: monthly * monthsPerYear / SafeWithdrawalRate,
		})
	}
	return result, schedule
}

// STP moves a fixed amount from the debt leg to the equity leg each month.
// Both legs accrue at their own rate before the transfer, and transfers stop
// once the debt leg is empty.
func STP(in domain.STPInput) domain.STPResult {
	result, _ := stpProjection(in)
	return result
}

func stpProjection(in domain.STPInput) (domain.STPResult, []domain.SchedulePoint) {
	debtRate := monthlyRate(in.DebtAnnualRatePercent)
	equityRate := monthlyRate(in.EquityAnnualRatePercent)
	months := in.Years * monthsPerYear

	result := domain.STPResult{InitialInvestment: in.InitialDebtPrincipal}
	schedule := []domain.SchedulePoint{{Year: 0, Invested: in.InitialDebtPrincipal, Value: in.InitialDebtPrincipal}}

	debt, equity := in.InitialDebtPrincipal, 0.0
	for i := 0; i < months; i++ {
		debt *= 1 + debtRate
		equity *= 1 + equityRate

		transfer := math.Min(in.MonthlyTransferAmount, debt)
		debt -= transfer
		equity += transfer
		result.TotalTransferred += transfer

		if debt <= 0 && result.SourceExhaustedMonth == 0 {
			debt = 0
			result.SourceExhaustedMonth = i + 1
		}
		if (i+1)%monthsPerYear == 0 {
			schedule = append(schedule, domain.SchedulePoint{
				Year:     (i + 1) / monthsPerYear,
				Invested: in.InitialDebtPrincipal,
				Value:    debt + equity,
			})
		}
	}

	result.DebtBalance = debt
	result.EquityBalance = equity
	result.FinalValue = debt + equity
	result.EstimatedReturns = result.FinalValue - in.InitialDebtPrincipal
	return result, schedule
}

func growth(kind domain.ScenarioKind, invested, value float64) domain.GrowthResult {
	return domain.GrowthResult{
		Scenario:         kind,
		Invested:         invested,
		EstimatedReturns: value - invested,
		FutureValue:      value,
	}
}
