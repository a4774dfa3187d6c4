package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/heartlines/internal/model"
)

// SameMonth reports whether t falls in the calendar month of ref, judged in
// ref's location.
func SameMonth(t, ref time.Time) bool {
	lt := t.In(ref.Location())
	return lt.Year() == ref.Year() && lt.Month() == ref.Month()
}

// MonthStart returns midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// TotalMonthlyIncome sums the monthly equivalent of every income.
func TotalMonthlyIncome(incomes []model.Income) float64 {
	var total float64
	for _, in := range incomes {
		total += MonthlyEquivalent(in.Amount, in.Frequency)
	}
	return total
}

// TotalMonthlyExpenses sums the expenses charged in asOf's month.
//
// An expense dated in that month counts once at face value. Otherwise a
// recurring expense contributes its monthly equivalent, and anything else is
// left out.
func TotalMonthlyExpenses(expenses []model.Expense, asOf time.Time) float64 {
	var total float64
	for _, e := range expenses {
		total += monthContribution(e, asOf)
	}
	return total
}

func monthContribution(e model.Expense, month time.Time) float64 {
	if SameMonth(e.Date, month) {
		return e.Amount
	}
	if freq, ok := e.RecurringFrequency(); ok {
		return MonthlyEquivalent(e.Amount, freq)
	}
	return 0
}

// NewCategoryTotals returns a map with every category present at zero.
func NewCategoryTotals() model.CategoryTotals {
	totals := make(model.CategoryTotals, len(model.Categories))
	for _, c := range model.Categories {
		totals[c] = 0
	}
	return totals
}

// CategorySpending buckets the month's spending by category.
//
// Inclusion matches TotalMonthlyExpenses, but a recurring expense is always
// normalized to its monthly equivalent, even when it is dated in asOf's month.
func CategorySpending(expenses []model.Expense, asOf time.Time) model.CategoryTotals {
	totals := NewCategoryTotals()
	for _, e := range expenses {
		freq, recurring := e.RecurringFrequency()
		if !SameMonth(e.Date, asOf) && !recurring {
			continue
		}
		amount := e.Amount
		if recurring {
			amount = MonthlyEquivalent(e.Amount, freq)
		}
		totals[e.Category] += amount
	}
	return totals
}

// CategoryBreakdown returns the dashboard spending split: face-value totals of
// the month's included expenses per category, with each category's share of
// the total. Only categories with spending appear, largest first.
func CategoryBreakdown(expenses []model.Expense, asOf time.Time) []model.CategoryShare {
	sums := make(map[model.Category]float64)
	var total float64
	for _, e := range expenses {
		_, recurring := e.RecurringFrequency()
		if !SameMonth(e.Date, asOf) && !recurring {
			continue
		}
		sums[e.Category] += e.Amount
		total += e.Amount
	}

	shares := make([]model.CategoryShare, 0, len(sums))
	for c, amount := range sums {
		s := model.CategoryShare{Category: c, Amount: amount}
		if total > 0 {
			s.Percentage = amount / total * 100
		}
		shares = append(shares, s)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount == shares[j].Amount {
			return shares[i].Category < shares[j].Category
		}
		return shares[i].Amount > shares[j].Amount
	})
	return shares
}

// Summarize builds the dashboard view model for asOf.
func Summarize(incomes []model.Income, expenses []model.Expense, monthsBack int, asOf time.Time) model.DashboardSummary {
	income := TotalMonthlyIncome(incomes)
	spent := TotalMonthlyExpenses(expenses, asOf)
	return model.DashboardSummary{
		TotalIncome:       income,
		TotalExpenses:     spent,
		NetIncome:         income - spent,
		SavingsRate:       savingsRate(income, spent),
		MonthlyTrend:      MonthlyTrend(incomes, expenses, monthsBack, asOf),
		CategoryBreakdown: CategoryBreakdown(expenses, asOf),
	}
}

func savingsRate(income, spent float64) float64 {
	if income <= 0 {
		return 0
	}
	return (income - spent) / income * 100
}

// FilterExpensesByCategory returns expenses in the given category.
func FilterExpensesByCategory(expenses []model.Expense, c model.Category) []model.Expense {
	if c == "" {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if e.Category == c {
			result = append(result, e)
		}
	}
	return result
}

// FilterExpensesByMonth returns expenses that count toward asOf's month,
// i.e. those dated in it plus all recurring ones.
func FilterExpensesByMonth(expenses []model.Expense, asOf time.Time) []model.Expense {
	var result []model.Expense
	for _, e := range expenses {
		_, recurring := e.RecurringFrequency()
		if SameMonth(e.Date, asOf) || recurring {
			result = append(result, e)
		}
	}
	return result
}

// FilterExpensesByText returns expenses whose description contains query,
// ignoring case.
func FilterExpensesByText(expenses []model.Expense, query string) []model.Expense {
	if query == "" {
		return expenses
	}
	q := strings.ToLower(query)
	var result []model.Expense
	for _, e := range expenses {
		if strings.Contains(strings.ToLower(e.Description), q) {
			result = append(result, e)
		}
	}
	return result
}

// SortExpensesByDate returns a copy of expenses, most recent first.
func SortExpensesByDate(expenses []model.Expense) []model.Expense {
	sorted := make([]model.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}
