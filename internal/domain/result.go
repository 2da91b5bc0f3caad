package domain

// Amount is one labelled figure of a result breakdown
type Amount struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// CalculationResult is implemented by every scenario result record
type CalculationResult interface {
	Kind() ScenarioKind
	// Breakdown returns the labelled amounts in display order.
	Breakdown() []Amount
	// GrandTotal returns the headline figure, if the scenario has one.
	GrandTotal() (float64, bool)
}

// GrowthResult covers SIP, lumpsum and step-up projections
type GrowthResult struct {
	Scenario         ScenarioKind `json:"kind"`
	Invested         float64      `json:"invested"`
	EstimatedReturns float64      `json:"estimated_returns"`
	FutureValue      float64      `json:"future_value"`
}

func (r GrowthResult) Kind() ScenarioKind { return r.Scenario }

func (r GrowthResult) Breakdown() []Amount {
	return []Amount{
		{Label: "Invested Amount", Value: r.Invested},
		{Label: "Est. Returns", Value: r.EstimatedReturns},
	}
}

func (r GrowthResult) GrandTotal() (float64, bool) { return r.FutureValue, true }

// SWPResult reports a withdrawal plan. Exhausted is set when the corpus ran
// out before the end of the period.
type SWPResult struct {
	TotalInvested  float64 `json:"total_invested"`
	TotalWithdrawn float64 `json:"total_withdrawn"`
	FinalBalance   float64 `json:"final_balance"`
	MonthsFunded   int     `json:"months_funded"`
	Exhausted      bool    `json:"exhausted"`
}

func (SWPResult) Kind() ScenarioKind { return KindSWP }

func (r SWPResult) Breakdown() []Amount {
	return []Amount{
		{Label: "Total Investment", Value: r.TotalInvested},
		{Label: "Total Withdrawn", Value: r.TotalWithdrawn},
		{Label: "Final Balance", Value: r.FinalBalance},
	}
}

func (r SWPResult) GrandTotal() (float64, bool) { return r.FinalBalance, true }

// RetirementResult sizes the corpus needed to fund inflated expenses
type RetirementResult struct {
	YearsToRetire               int     `json:"years_to_retire"`
	MonthlyExpensesAtRetirement float64 `json:"monthly_expenses_at_retirement"`
	TargetCorpus                float64 `json:"target_corpus"`
}

func (RetirementResult) Kind() ScenarioKind { return KindRetirement }

func (r RetirementResult) Breakdown() []Amount {
	return []Amount{
		{Label: "Target Corpus", Value: r.TargetCorpus},
		{Label: "Monthly Expenses at Retirement", Value: r.MonthlyExpensesAtRetirement},
	}
}

func (r RetirementResult) GrandTotal() (float64, bool) { return r.TargetCorpus, true }

// STPResult reports the debt and equity legs of a transfer plan.
// SourceExhaustedMonth is the 1-based month in which the debt balance reached
// zero, or 0 if it never did.
type STPResult struct {
	InitialInvestment    float64 `json:"initial_investment"`
	DebtBalance          float64 `json:"debt_balance"`
	EquityBalance        float64 `json:"equity_balance"`
	TotalTransferred     float64 `json:"total_transferred"`
	FinalValue           float64 `json:"final_value"`
	EstimatedReturns     float64 `json:"estimated_returns"`
	SourceExhaustedMonth int     `json:"source_exhausted_month"`
}

func (STPResult) Kind() ScenarioKind { return KindSTP }

func (r STPResult) Breakdown() []Amount {
	return []Amount{
		{Label: "Initial Investment", Value: r.InitialInvestment},
		{Label: "Est. Returns", Value: r.EstimatedReturns},
	}
}

func (r STPResult) GrandTotal() (float64, bool) { return r.FinalValue, true }

// SchedulePoint is the state of a scenario at the end of a year.
// Year 0 is the starting position.
type SchedulePoint struct {
	Year      int     `json:"year"`
	Invested  float64 `json:"invested"`
	Value     float64 `json:"value"`
	Withdrawn float64 `json:"withdrawn,omitempty"`
}
