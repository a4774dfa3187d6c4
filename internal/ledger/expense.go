package ledger

import (
	"fmt"
	"time"

	"github.com/theirongolddev/heartlines/internal/model"
)

// ExpenseInput holds the user-editable fields of a new expense.
type ExpenseInput struct {
	Description string
	Amount      float64
	Category    model.Category
	Date        time.Time
	IsRecurring bool
	Frequency   model.Frequency
}

// ExpensePatch holds the fields to change on an existing expense. Nil fields
// are left as they are.
type ExpensePatch struct {
	Description *string
	Amount      *float64
	Category    *model.Category
	Date        *time.Time
	IsRecurring *bool
	Frequency   *model.Frequency
}

// normalizeRecurrence drops the frequency of one-off expenses and defaults
// recurring ones to monthly.
func normalizeRecurrence(e *model.Expense) {
	switch {
	case !e.IsRecurring:
		e.Frequency = ""
	case e.Frequency == "":
		e.Frequency = model.Monthly
	}
}

func validateExpense(e model.Expense) error {
	if _, ok := trimmed(e.Description); !ok {
		return fmt.Errorf("expense description: %w", ErrEmptyDescription)
	}
	if !validAmount(e.Amount) {
		return fmt.Errorf("expense amount %v: %w", e.Amount, ErrInvalidAmount)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("expense category %q: %w", e.Category, ErrInvalidCategory)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("expense date: %w", ErrInvalidDate)
	}
	if e.IsRecurring && !e.Frequency.Valid() {
		return fmt.Errorf("expense frequency %q: %w", e.Frequency, ErrInvalidFrequency)
	}
	return nil
}

// AddExpense appends a new expense with a fresh ID and timestamps.
func (l *Ledger) AddExpense(d model.FinancialData, input ExpenseInput) (model.FinancialData, model.Expense, error) {
	now := l.now()
	desc, _ := trimmed(input.Description)
	e := model.Expense{
		ID:          l.newID(ExpensePrefix),
		Description: desc,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		IsRecurring: input.IsRecurring,
		Frequency:   input.Frequency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	normalizeRecurrence(&e)
	if err := validateExpense(e); err != nil {
		return d, model.Expense{}, err
	}
	expenses := append(cloneExpenses(d.Expenses), e)
	return l.Replace(cloneIncomes(d.Incomes), expenses), e, nil
}

// UpdateExpense applies patch to the expense with id and refreshes UpdatedAt.
func (l *Ledger) UpdateExpense(d model.FinancialData, id string, patch ExpensePatch) (model.FinancialData, model.Expense, error) {
	i := d.FindExpense(id)
	if i < 0 {
		return d, model.Expense{}, notFound("expense", id)
	}
	e := d.Expenses[i]
	if patch.Description != nil {
		e.Description, _ = trimmed(*patch.Description)
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.IsRecurring != nil {
		e.IsRecurring = *patch.IsRecurring
	}
	if patch.Frequency != nil {
		e.Frequency = *patch.Frequency
	}
	normalizeRecurrence(&e)
	if err := validateExpense(e); err != nil {
		return d, model.Expense{}, err
	}
	e.UpdatedAt = l.now()

	expenses := cloneExpenses(d.Expenses)
	expenses[i] = e
	return l.Replace(cloneIncomes(d.Incomes), expenses), e, nil
}

// DeleteExpense removes the expense with id.
func (l *Ledger) DeleteExpense(d model.FinancialData, id string) (model.FinancialData, error) {
	i := d.FindExpense(id)
	if i < 0 {
		return d, notFound("expense", id)
	}
	expenses := make([]model.Expense, 0, len(d.Expenses)-1)
	expenses = append(expenses, d.Expenses[:i]...)
	expenses = append(expenses, d.Expenses[i+1:]...)
	return l.Replace(cloneIncomes(d.Incomes), expenses), nil
}
