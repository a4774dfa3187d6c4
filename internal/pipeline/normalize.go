// Package pipeline holds the budget calculation engine: pure functions that
// turn incomes and expenses into monthly totals, category spending, trend
// series and 50/30/20 recommendations.
package pipeline

import "github.com/theirongolddev/heartlines/internal/model"

// Monthly conversion factors.
const (
	WeeksPerMonth    = 4.33 // average weeks per month
	BiWeeklyPerMonth = 2.17 // average bi-weekly periods per month
	MonthsPerYear    = 12
)

// MonthlyEquivalent converts an amount paid at the given frequency into its
// monthly value. Unknown frequencies are treated as already monthly.
func MonthlyEquivalent(amount float64, freq model.Frequency) float64 {
	switch freq {
	case model.Weekly:
		return amount * WeeksPerMonth
	case model.BiWeekly:
		return amount * BiWeeklyPerMonth
	case model.Monthly:
		return amount
	case model.Yearly:
		return amount / MonthsPerYear
	default:
		return amount
	}
}
