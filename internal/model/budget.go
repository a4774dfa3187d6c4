package model

// Status classifies actual spending against a recommendation.
type Status string

// Budget statuses.
const (
	StatusOver    Status = "over"
	StatusUnder   Status = "under"
	StatusOnTrack Status = "on-track"
)

// BudgetRecommendation compares one category's spending with its target.
type BudgetRecommendation struct {
	Category          Category
	RecommendedAmount float64
	ActualAmount      float64
	Percentage        float64 // fixed display weight, not derived from data
	Status            Status
}

// BudgetAnalysis holds the monthly totals and 50/30/20 recommendations.
type BudgetAnalysis struct {
	TotalIncome       float64
	TotalExpenses     float64
	NetIncome         float64
	SavingsRate       float64 // percent of income, 0 when income is 0
	Recommendations   []BudgetRecommendation
	NeedsPercentage   float64
	WantsPercentage   float64
	SavingsPercentage float64
}

// Split holds the needs/wants/savings percentages of income.
type Split struct {
	Needs   float64
	Wants   float64
	Savings float64
}

// DefaultSplit is the 50/30/20 rule.
var DefaultSplit = Split{Needs: 50, Wants: 30, Savings: 20}

// DefaultBudgetAnalysis returns the zeroed analysis used before any data exists.
func DefaultBudgetAnalysis() BudgetAnalysis {
	return BudgetAnalysis{
		Recommendations:   []BudgetRecommendation{},
		NeedsPercentage:   DefaultSplit.Needs,
		WantsPercentage:   DefaultSplit.Wants,
		SavingsPercentage: DefaultSplit.Savings,
	}
}
