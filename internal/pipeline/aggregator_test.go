package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/heartlines/internal/model"
)

var asOf = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func expense(cat model.Category, amount float64, date time.Time) model.Expense {
	return model.Expense{
		ID:          "expense-" + string(cat),
		Description: string(cat),
		Amount:      amount,
		Category:    cat,
		Date:        date,
	}
}

func recurring(cat model.Category, amount float64, freq model.Frequency, date time.Time) model.Expense {
	e := expense(cat, amount, date)
	e.IsRecurring = true
	e.Frequency = freq
	return e
}

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		freq model.Frequency
		in   float64
		want float64
	}{
		{model.Weekly, 1000, 4330},
		{model.BiWeekly, 1000, 2170},
		{model.Monthly, 1000, 1000},
		{model.Yearly, 1200, 100},
		{model.Frequency("fortnightly"), 250, 250},
		{model.Weekly, 0, 0},
	}
	for _, tt := range tests {
		got := MonthlyEquivalent(tt.in, tt.freq)
		if !approx(got, tt.want) {
			t.Fatalf("MonthlyEquivalent(%.2f, %q) = %.4f, want %.4f", tt.in, tt.freq, got, tt.want)
		}
	}
}

func TestMonthlyEquivalentIsLinear(t *testing.T) {
	for _, f := range model.Frequencies {
		a, b, k := 123.45, 67.8, 3.0
		sum := MonthlyEquivalent(a, f) + MonthlyEquivalent(b, f)
		if !approx(MonthlyEquivalent(a+b, f), sum) {
			t.Fatalf("%s: additivity broken", f)
		}
		if !approx(MonthlyEquivalent(k*a, f), k*MonthlyEquivalent(a, f)) {
			t.Fatalf("%s: homogeneity broken", f)
		}
	}
}

func TestTotalMonthlyIncome_WeeklySalary(t *testing.T) {
	incomes := []model.Income{{ID: "income-1", Source: "Salary", Amount: 1000, Frequency: model.Weekly}}
	got := TotalMonthlyIncome(incomes)
	if !approx(got, 4330) {
		t.Fatalf("TotalMonthlyIncome = %.4f, want 4330", got)
	}
	if TotalMonthlyIncome(nil) != 0 {
		t.Fatal("TotalMonthlyIncome(nil) != 0")
	}
}

func TestTotalMonthlyExpenses_Inclusion(t *testing.T) {
	lastMonth := asOf.AddDate(0, -1, 0)
	expenses := []model.Expense{
		expense(model.Food, 50, asOf),
		expense(model.Shopping, 999, lastMonth),
		recurring(model.Utilities, 100, model.Monthly, lastMonth),
		// Recurring and dated this month: counted at face value.
		recurring(model.Entertainment, 10, model.Weekly, asOf),
		recurring(model.Other, 1200, model.Yearly, lastMonth),
		// A frequency without the recurring flag is ignored.
		{Category: model.Debt, Amount: 75, Date: lastMonth, Frequency: model.Monthly},
	}
	got := TotalMonthlyExpenses(expenses, asOf)
	want := 50.0 + 100 + 10 + 100
	if !approx(got, want) {
		t.Fatalf("TotalMonthlyExpenses = %.4f, want %.4f", got, want)
	}
}

func TestTotalMonthlyExpenses_OrderIndependent(t *testing.T) {
	expenses := []model.Expense{
		expense(model.Food, 12.5, asOf),
		recurring(model.Housing, 1500, model.Monthly, asOf.AddDate(0, -2, 0)),
		recurring(model.Transportation, 20, model.BiWeekly, asOf.AddDate(0, -1, 0)),
		expense(model.Other, 7, asOf.AddDate(0, -1, 0)),
	}
	reversed := make([]model.Expense, len(expenses))
	for i := range expenses {
		reversed[len(expenses)-1-i] = expenses[i]
	}
	if !approx(TotalMonthlyExpenses(expenses, asOf), TotalMonthlyExpenses(reversed, asOf)) {
		t.Fatal("total depends on expense order")
	}
	a, b := CategorySpending(expenses, asOf), CategorySpending(reversed, asOf)
	for _, c := range model.Categories {
		if !approx(a[c], b[c]) {
			t.Fatalf("category %s depends on expense order", c)
		}
	}
}

func TestSameMonth_UsesReferenceLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	ref := time.Date(2026, time.October, 1, 0, 0, 0, 0, est)
	// 03:00 UTC on Oct 1 is still Sep 30 in EST.
	t0 := time.Date(2026, time.October, 1, 3, 0, 0, 0, time.UTC)
	if SameMonth(t0, ref) {
		t.Fatal("SameMonth judged in UTC instead of reference location")
	}
	if !SameMonth(t0.Add(6*time.Hour), ref) {
		t.Fatal("SameMonth missed a timestamp inside the reference month")
	}
}

func TestCategorySpending_AllKeysPresent(t *testing.T) {
	totals := CategorySpending(nil, asOf)
	if len(totals) != len(model.Categories) {
		t.Fatalf("len(totals) = %d, want %d", len(totals), len(model.Categories))
	}
	for _, c := range model.Categories {
		v, ok := totals[c]
		if !ok {
			t.Fatalf("category %s missing", c)
		}
		if v != 0 {
			t.Fatalf("category %s = %.2f, want 0", c, v)
		}
	}
}

func TestCategorySpending_NormalizesRecurringInMonth(t *testing.T) {
	expenses := []model.Expense{recurring(model.Entertainment, 100, model.Weekly, asOf)}

	total := TotalMonthlyExpenses(expenses, asOf)
	if !approx(total, 100) {
		t.Fatalf("total = %.4f, want 100 (face value for in-month expense)", total)
	}
	spent := CategorySpending(expenses, asOf)
	if !approx(spent[model.Entertainment], 433) {
		t.Fatalf("entertainment = %.4f, want 433 (monthly equivalent)", spent[model.Entertainment])
	}
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []model.Expense{
		expense(model.Food, 100, asOf),
		expense(model.Housing, 300, asOf),
		recurring(model.Utilities, 25, model.Weekly, asOf.AddDate(0, -3, 0)),
		expense(model.Shopping, 500, asOf.AddDate(0, -1, 0)),
	}
	shares := CategoryBreakdown(expenses, asOf)
	if len(shares) != 3 {
		t.Fatalf("len(shares) = %d, want 3", len(shares))
	}
	if shares[0].Category != model.Housing || !approx(shares[0].Amount, 300) {
		t.Fatalf("first share = %+v, want housing 300", shares[0])
	}
	var pct float64
	for _, s := range shares {
		pct += s.Percentage
	}
	if !approx(pct, 100) {
		t.Fatalf("percentages sum to %.4f, want 100", pct)
	}
	if !approx(shares[2].Amount, 25) {
		t.Fatalf("recurring share uses %.2f, want face value 25", shares[2].Amount)
	}
}

func TestSummarize(t *testing.T) {
	incomes := []model.Income{{Source: "Salary", Amount: 4000, Frequency: model.Monthly}}
	expenses := []model.Expense{expense(model.Food, 1000, asOf)}

	s := Summarize(incomes, expenses, DefaultTrendMonths, asOf)
	if !approx(s.NetIncome, 3000) {
		t.Fatalf("NetIncome = %.2f, want 3000", s.NetIncome)
	}
	if !approx(s.SavingsRate, 75) {
		t.Fatalf("SavingsRate = %.2f, want 75", s.SavingsRate)
	}
	if len(s.MonthlyTrend) != DefaultTrendMonths {
		t.Fatalf("trend len = %d, want %d", len(s.MonthlyTrend), DefaultTrendMonths)
	}

	empty := Summarize(nil, expenses, DefaultTrendMonths, asOf)
	if empty.SavingsRate != 0 {
		t.Fatalf("SavingsRate with no income = %.2f, want 0", empty.SavingsRate)
	}
}

func TestFiltersAndSort(t *testing.T) {
	older := expense(model.Food, 10, asOf.AddDate(0, -2, 0))
	older.Description = "Groceries"
	newer := expense(model.Food, 20, asOf)
	newer.Description = "Coffee beans"
	other := expense(model.Debt, 30, asOf.AddDate(0, 0, -1))
	expenses := []model.Expense{older, newer, other}

	if got := FilterExpensesByCategory(expenses, model.Food); len(got) != 2 {
		t.Fatalf("food filter len = %d, want 2", len(got))
	}
	if got := FilterExpensesByCategory(expenses, ""); len(got) != 3 {
		t.Fatalf("empty category filter len = %d, want 3", len(got))
	}
	if got := FilterExpensesByMonth(expenses, asOf); len(got) != 2 {
		t.Fatalf("month filter len = %d, want 2", len(got))
	}
	if got := FilterExpensesByText(expenses, "BEANS"); len(got) != 1 || got[0].Amount != 20 {
		t.Fatalf("text filter = %+v, want coffee beans", got)
	}

	sorted := SortExpensesByDate(expenses)
	if sorted[0].Amount != 20 || sorted[2].Amount != 10 {
		t.Fatalf("sorted amounts = [%.0f %.0f %.0f], want newest first", sorted[0].Amount, sorted[1].Amount, sorted[2].Amount)
	}
	if expenses[0].Amount != 10 {
		t.Fatal("SortExpensesByDate modified its input")
	}
}
