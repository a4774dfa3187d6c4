package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/heartlines/internal/model"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLedger(start time.Time) (*Ledger, *fakeClock) {
	clock := &fakeClock{t: start}
	n := 0
	l := New(
		WithClock(clock.now),
		WithIDs(func(prefix string) string {
			n++
			return fmt.Sprintf("%s-%d", prefix, n)
		}),
	)
	return l, clock
}

var start = time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

func TestNewIDFormat(t *testing.T) {
	id := NewID(IncomePrefix)
	if !strings.HasPrefix(id, "income-") || len(id) != len("income-")+36 {
		t.Fatalf("NewID = %q, want income-<uuid>", id)
	}
	if NewID(IncomePrefix) == id {
		t.Fatal("NewID returned the same id twice")
	}
}

func TestAddIncomeRecomputesAnalysis(t *testing.T) {
	l, _ := newTestLedger(start)
	d := model.DefaultFinancialData()

	next, in, err := l.AddIncome(d, IncomeInput{Source: "  Salary ", Amount: 1000, Frequency: model.Weekly})
	if err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if in.ID != "income-1" || in.Source != "Salary" {
		t.Fatalf("income = %+v, want id income-1 and trimmed source", in)
	}
	if !in.CreatedAt.Equal(start) || !in.UpdatedAt.Equal(start) {
		t.Fatalf("timestamps = %v/%v, want %v", in.CreatedAt, in.UpdatedAt, start)
	}
	if math.Abs(next.BudgetAnalysis.TotalIncome-4330) > 1e-6 {
		t.Fatalf("TotalIncome = %.4f, want 4330", next.BudgetAnalysis.TotalIncome)
	}
	if len(next.BudgetAnalysis.Recommendations) != 7 {
		t.Fatalf("recommendations = %d, want 7", len(next.BudgetAnalysis.Recommendations))
	}
	if len(d.Incomes) != 0 {
		t.Fatal("AddIncome modified its input")
	}
}

func TestAddIncomeValidation(t *testing.T) {
	l, _ := newTestLedger(start)
	d := model.DefaultFinancialData()

	tests := []struct {
		name  string
		input IncomeInput
		want  error
	}{
		{"blank source", IncomeInput{Source: "   ", Amount: 10, Frequency: model.Monthly}, ErrEmptyDescription},
		{"zero amount", IncomeInput{Source: "Job", Amount: 0, Frequency: model.Monthly}, ErrInvalidAmount},
		{"negative amount", IncomeInput{Source: "Job", Amount: -5, Frequency: model.Monthly}, ErrInvalidAmount},
		{"NaN amount", IncomeInput{Source: "Job", Amount: math.NaN(), Frequency: model.Monthly}, ErrInvalidAmount},
		{"bad frequency", IncomeInput{Source: "Job", Amount: 10, Frequency: "daily"}, ErrInvalidFrequency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := l.AddIncome(d, tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateIncomeKeepsCreatedAt(t *testing.T) {
	l, clock := newTestLedger(start)
	d, in, err := l.AddIncome(model.DefaultFinancialData(), IncomeInput{Source: "Salary", Amount: 3000, Frequency: model.Monthly})
	if err != nil {
		t.Fatalf("AddIncome: %v", err)
	}

	clock.t = start.Add(48 * time.Hour)
	amount := 3500.0
	d, updated, err := l.UpdateIncome(d, in.ID, IncomePatch{Amount: &amount})
	if err != nil {
		t.Fatalf("UpdateIncome: %v", err)
	}
	if !updated.CreatedAt.Equal(start) {
		t.Fatalf("CreatedAt = %v, want %v", updated.CreatedAt, start)
	}
	if !updated.UpdatedAt.Equal(clock.t) {
		t.Fatalf("UpdatedAt = %v, want %v", updated.UpdatedAt, clock.t)
	}
	if updated.Source != "Salary" {
		t.Fatalf("Source = %q, want unchanged", updated.Source)
	}
	if d.BudgetAnalysis.TotalIncome != 3500 {
		t.Fatalf("TotalIncome = %.2f, want 3500", d.BudgetAnalysis.TotalIncome)
	}

	if _, _, err := l.UpdateIncome(d, "income-missing", IncomePatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestDeleteIncome(t *testing.T) {
	l, _ := newTestLedger(start)
	d := model.DefaultFinancialData()
	d, a, _ := l.AddIncome(d, IncomeInput{Source: "A", Amount: 100, Frequency: model.Monthly})
	d, b, _ := l.AddIncome(d, IncomeInput{Source: "B", Amount: 200, Frequency: model.Monthly})

	next, err := l.DeleteIncome(d, a.ID)
	if err != nil {
		t.Fatalf("DeleteIncome: %v", err)
	}
	if len(next.Incomes) != 1 || next.Incomes[0].ID != b.ID {
		t.Fatalf("incomes after delete = %+v", next.Incomes)
	}
	if next.BudgetAnalysis.TotalIncome != 200 {
		t.Fatalf("TotalIncome = %.2f, want 200", next.BudgetAnalysis.TotalIncome)
	}
	if len(d.Incomes) != 2 {
		t.Fatal("DeleteIncome modified its input")
	}
	if _, err := l.DeleteIncome(next, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestAddExpenseRecurrence(t *testing.T) {
	l, _ := newTestLedger(start)
	d := model.DefaultFinancialData()

	d, oneOff, err := l.AddExpense(d, ExpenseInput{
		Description: "Concert",
		Amount:      80,
		Category:    model.Entertainment,
		Date:        start,
		Frequency:   model.Weekly,
	})
	if err != nil {
		t.Fatalf("AddExpense one-off: %v", err)
	}
	if oneOff.Frequency != "" {
		t.Fatalf("one-off frequency = %q, want empty", oneOff.Frequency)
	}

	d, rent, err := l.AddExpense(d, ExpenseInput{
		Description: "Rent",
		Amount:      1500,
		Category:    model.Housing,
		Date:        start.AddDate(0, -2, 0),
		IsRecurring: true,
	})
	if err != nil {
		t.Fatalf("AddExpense recurring: %v", err)
	}
	if rent.Frequency != model.Monthly {
		t.Fatalf("recurring frequency = %q, want monthly default", rent.Frequency)
	}
	if d.BudgetAnalysis.TotalExpenses != 1580 {
		t.Fatalf("TotalExpenses = %.2f, want 1580", d.BudgetAnalysis.TotalExpenses)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	l, _ := newTestLedger(start)
	d := model.DefaultFinancialData()
	base := ExpenseInput{Description: "Lunch", Amount: 12, Category: model.Food, Date: start}

	tests := []struct {
		name   string
		mutate func(*ExpenseInput)
		want   error
	}{
		{"blank description", func(in *ExpenseInput) { in.Description = "" }, ErrEmptyDescription},
		{"infinite amount", func(in *ExpenseInput) { in.Amount = math.Inf(1) }, ErrInvalidAmount},
		{"unknown category", func(in *ExpenseInput) { in.Category = "pets" }, ErrInvalidCategory},
		{"zero date", func(in *ExpenseInput) { in.Date = time.Time{} }, ErrInvalidDate},
		{"bad recurring frequency", func(in *ExpenseInput) { in.IsRecurring = true; in.Frequency = "hourly" }, ErrInvalidFrequency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			tt.mutate(&input)
			if _, _, err := l.AddExpense(d, input); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdateExpenseTurnsOffRecurrence(t *testing.T) {
	l, clock := newTestLedger(start)
	d, e, err := l.AddExpense(model.DefaultFinancialData(), ExpenseInput{
		Description: "Gym",
		Amount:      40,
		Category:    model.Healthcare,
		Date:        start.AddDate(0, -1, 0),
		IsRecurring: true,
		Frequency:   model.Monthly,
	})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if d.BudgetAnalysis.TotalExpenses != 40 {
		t.Fatalf("TotalExpenses = %.2f, want 40", d.BudgetAnalysis.TotalExpenses)
	}

	clock.t = start.Add(time.Hour)
	off := false
	d, updated, err := l.UpdateExpense(d, e.ID, ExpensePatch{IsRecurring: &off})
	if err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	if updated.Frequency != "" {
		t.Fatalf("frequency = %q, want cleared", updated.Frequency)
	}
	if !updated.UpdatedAt.Equal(clock.t) || !updated.CreatedAt.Equal(start) {
		t.Fatalf("timestamps = %v/%v", updated.CreatedAt, updated.UpdatedAt)
	}
	if d.BudgetAnalysis.TotalExpenses != 0 {
		t.Fatalf("TotalExpenses = %.2f, want 0 for last month's one-off", d.BudgetAnalysis.TotalExpenses)
	}

	bad := model.Category("misc")
	if _, _, err := l.UpdateExpense(d, e.ID, ExpensePatch{Category: &bad}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("err = %v, want ErrInvalidCategory", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	l, _ := newTestLedger(start)
	d, e, _ := l.AddExpense(model.DefaultFinancialData(), ExpenseInput{
		Description: "Book", Amount: 20, Category: model.Education, Date: start,
	})
	d, err := l.DeleteExpense(d, e.ID)
	if err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if len(d.Expenses) != 0 || d.BudgetAnalysis.TotalExpenses != 0 {
		t.Fatalf("state after delete = %+v", d)
	}
	if _, err := l.DeleteExpense(d, e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMergeAppends(t *testing.T) {
	l, _ := newTestLedger(start)
	d, _, _ := l.AddIncome(model.DefaultFinancialData(), IncomeInput{Source: "Job", Amount: 2000, Frequency: model.Monthly})

	merged := l.Merge(d,
		[]model.Income{{ID: "income-x", Source: "Side", Amount: 500, Frequency: model.Monthly}},
		[]model.Expense{{ID: "expense-x", Description: "Food", Amount: 300, Category: model.Food, Date: start}},
	)
	if len(merged.Incomes) != 2 || len(merged.Expenses) != 1 {
		t.Fatalf("merged lengths = %d/%d, want 2/1", len(merged.Incomes), len(merged.Expenses))
	}
	if merged.BudgetAnalysis.NetIncome != 2200 {
		t.Fatalf("NetIncome = %.2f, want 2200", merged.BudgetAnalysis.NetIncome)
	}
	if len(d.Incomes) != 1 {
		t.Fatal("Merge modified its input")
	}
}
