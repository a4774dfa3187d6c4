package pipeline

import (
	"time"

	"github.com/theirongolddev/heartlines/internal/model"
)

// Bucket is one part of the needs/wants/savings split.
type Bucket string

// Split buckets.
const (
	BucketNeeds   Bucket = "needs"
	BucketWants   Bucket = "wants"
	BucketSavings Bucket = "savings"
)

// StatusTolerance is the ±band around a recommendation that still counts as
// on track, as a fraction of the recommended amount.
const StatusTolerance = 0.10

// Allocation assigns a category a fixed share of one bucket.
type Allocation struct {
	Category       model.Category
	Bucket         Bucket
	Weight         float64 // fraction of the bucket amount
	DisplayPercent float64 // shown next to the row, not computed
}

// DefaultAllocations is the recommendation table. Healthcare, education, debt
// and other are tracked in spending but get no recommendation.
var DefaultAllocations = []Allocation{
	{Category: model.Housing, Bucket: BucketNeeds, Weight: 0.30, DisplayPercent: 15},
	{Category: model.Utilities, Bucket: BucketNeeds, Weight: 0.20, DisplayPercent: 10},
	{Category: model.Food, Bucket: BucketNeeds, Weight: 0.30, DisplayPercent: 15},
	{Category: model.Transportation, Bucket: BucketNeeds, Weight: 0.20, DisplayPercent: 10},
	{Category: model.Entertainment, Bucket: BucketWants, Weight: 0.40, DisplayPercent: 12},
	{Category: model.Shopping, Bucket: BucketWants, Weight: 0.60, DisplayPercent: 18},
	{Category: model.Savings, Bucket: BucketSavings, Weight: 1.0, DisplayPercent: 20},
}

// Classify compares actual spending with a recommended amount.
func Classify(actual, recommended float64) model.Status {
	tolerance := recommended * StatusTolerance
	switch {
	case actual > recommended+tolerance:
		return model.StatusOver
	case actual < recommended-tolerance:
		return model.StatusUnder
	default:
		return model.StatusOnTrack
	}
}

// BucketAmounts returns the income share of each bucket for a split.
func BucketAmounts(totalIncome float64, split model.Split) map[Bucket]float64 {
	return map[Bucket]float64{
		BucketNeeds:   totalIncome * split.Needs / 100,
		BucketWants:   totalIncome * split.Wants / 100,
		BucketSavings: totalIncome * split.Savings / 100,
	}
}

// Analyze computes the budget analysis for asOf's month with the 50/30/20
// split and the default allocation table.
func Analyze(incomes []model.Income, expenses []model.Expense, asOf time.Time) model.BudgetAnalysis {
	return AnalyzeWith(incomes, expenses, asOf, model.DefaultSplit, DefaultAllocations)
}

// AnalyzeWith computes the budget analysis with an explicit split and
// allocation table.
func AnalyzeWith(
	incomes []model.Income,
	expenses []model.Expense,
	asOf time.Time,
	split model.Split,
	allocations []Allocation,
) model.BudgetAnalysis {
	totalIncome := TotalMonthlyIncome(incomes)
	totalExpenses := TotalMonthlyExpenses(expenses, asOf)

	buckets := BucketAmounts(totalIncome, split)
	spending := CategorySpending(expenses, asOf)

	recs := make([]model.BudgetRecommendation, 0, len(allocations))
	for _, a := range allocations {
		recommended := buckets[a.Bucket] * a.Weight
		actual := spending[a.Category]
		recs = append(recs, model.BudgetRecommendation{
			Category:          a.Category,
			RecommendedAmount: recommended,
			ActualAmount:      actual,
			Percentage:        a.DisplayPercent,
			Status:            Classify(actual, recommended),
		})
	}

	return model.BudgetAnalysis{
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		NetIncome:         totalIncome - totalExpenses,
		SavingsRate:       savingsRate(totalIncome, totalExpenses),
		Recommendations:   recs,
		NeedsPercentage:   split.Needs,
		WantsPercentage:   split.Wants,
		SavingsPercentage: split.Savings,
	}
}

// Rule describes one bucket of the split for display.
type Rule struct {
	Bucket      Bucket
	Title       string
	Percentage  float64
	Amount      float64
	Description string
}

// Rules returns the three split buckets of an analysis with their amounts.
func Rules(a model.BudgetAnalysis) []Rule {
	return []Rule{
		{
			Bucket:      BucketNeeds,
			Title:       "Needs",
			Percentage:  a.NeedsPercentage,
			Amount:      a.TotalIncome * a.NeedsPercentage / 100,
			Description: "Essential expenses: housing, utilities, food, transportation",
		},
		{
			Bucket:      BucketWants,
			Title:       "Wants",
			Percentage:  a.WantsPercentage,
			Amount:      a.TotalIncome * a.WantsPercentage / 100,
			Description: "Discretionary spending: entertainment, shopping, dining out",
		},
		{
			Bucket:      BucketSavings,
			Title:       "Savings",
			Percentage:  a.SavingsPercentage,
			Amount:      a.TotalIncome * a.SavingsPercentage / 100,
			Description: "Emergency fund, retirement, investments",
		},
	}
}

// CountByStatus tallies recommendation rows per status.
func CountByStatus(recs []model.BudgetRecommendation) map[model.Status]int {
	counts := map[model.Status]int{
		model.StatusOver:    0,
		model.StatusUnder:   0,
		model.StatusOnTrack: 0,
	}
	for _, r := range recs {
		counts[r.Status]++
	}
	return counts
}
