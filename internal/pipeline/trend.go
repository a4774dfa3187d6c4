package pipeline

import (
	"time"

	"github.com/theirongolddev/heartlines/internal/model"
)

// DefaultTrendMonths is the length of the dashboard trend series.
const DefaultTrendMonths = 6

// MonthLabelLayout formats trend labels, e.g. "Oct 2026".
const MonthLabelLayout = "Jan 2006"

// MonthlyTrend returns monthsBack monthly points ending at asOf's month,
// oldest first.
//
// Income is not historized: every month carries the current monthly income.
// Expenses for each month follow the same rule as TotalMonthlyExpenses with
// that month in place of asOf.
func MonthlyTrend(incomes []model.Income, expenses []model.Expense, monthsBack int, asOf time.Time) []model.MonthlyPoint {
	if monthsBack <= 0 {
		return []model.MonthlyPoint{}
	}

	income := TotalMonthlyIncome(incomes)
	points := make([]model.MonthlyPoint, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		month := time.Date(asOf.Year(), asOf.Month()-time.Month(i), 1, 0, 0, 0, 0, asOf.Location())
		points = append(points, model.MonthlyPoint{
			Month:    month,
			Label:    month.Format(MonthLabelLayout),
			Income:   income,
			Expenses: TotalMonthlyExpenses(expenses, month),
		})
	}
	return points
}
