package model

import "time"

// CategoryTotals maps every category to an amount. Producers always fill all
// eleven keys.
type CategoryTotals map[Category]float64

// Total sums all category amounts.
func (ct CategoryTotals) Total() float64 {
	var sum float64
	for _, c := range Categories {
		sum += ct[c]
	}
	return sum
}

// CategoryShare is one slice of the dashboard spending breakdown.
type CategoryShare struct {
	Category   Category
	Amount     float64
	Percentage float64
}

// MonthlyPoint is one month of the income/expense trend series.
type MonthlyPoint struct {
	Month    time.Time // first day of the month
	Label    string    // e.g. "Oct 2026"
	Income   float64
	Expenses float64
}

// Net returns income minus expenses for the month.
func (p MonthlyPoint) Net() float64 {
	return p.Income - p.Expenses
}

// DashboardSummary is the read-only view model behind the overview screen.
type DashboardSummary struct {
	TotalIncome       float64
	TotalExpenses     float64
	NetIncome         float64
	SavingsRate       float64
	MonthlyTrend      []MonthlyPoint
	CategoryBreakdown []CategoryShare
}
