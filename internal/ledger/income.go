package ledger

import (
	"fmt"

	"github.com/theirongolddev/heartlines/internal/model"
)

// IncomeInput holds the user-editable fields of a new income.
type IncomeInput struct {
	Source    string
	Amount    float64
	Frequency model.Frequency
}

// IncomePatch holds the fields to change on an existing income. Nil fields
// are left as they are.
type IncomePatch struct {
	Source    *string
	Amount    *float64
	Frequency *model.Frequency
}

func validateIncome(in model.Income) error {
	if _, ok := trimmed(in.Source); !ok {
		return fmt.Errorf("income source: %w", ErrEmptyDescription)
	}
	if !validAmount(in.Amount) {
		return fmt.Errorf("income amount %v: %w", in.Amount, ErrInvalidAmount)
	}
	if !in.Frequency.Valid() {
		return fmt.Errorf("income frequency %q: %w", in.Frequency, ErrInvalidFrequency)
	}
	return nil
}

// AddIncome appends a new income with a fresh ID and timestamps.
func (l *Ledger) AddIncome(d model.FinancialData, input IncomeInput) (model.FinancialData, model.Income, error) {
	now := l.now()
	source, _ := trimmed(input.Source)
	in := model.Income{
		ID:        l.newID(IncomePrefix),
		Source:    source,
		Amount:    input.Amount,
		Frequency: input.Frequency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateIncome(in); err != nil {
		return d, model.Income{}, err
	}
	incomes := append(cloneIncomes(d.Incomes), in)
	return l.Replace(incomes, cloneExpenses(d.Expenses)), in, nil
}

// UpdateIncome applies patch to the income with id and refreshes UpdatedAt.
func (l *Ledger) UpdateIncome(d model.FinancialData, id string, patch IncomePatch) (model.FinancialData, model.Income, error) {
	i := d.FindIncome(id)
	if i < 0 {
		return d, model.Income{}, notFound("income", id)
	}
	in := d.Incomes[i]
	if patch.Source != nil {
		in.Source, _ = trimmed(*patch.Source)
	}
	if patch.Amount != nil {
		in.Amount = *patch.Amount
	}
	if patch.Frequency != nil {
		in.Frequency = *patch.Frequency
	}
	if err := validateIncome(in); err != nil {
		return d, model.Income{}, err
	}
	in.UpdatedAt = l.now()

	incomes := cloneIncomes(d.Incomes)
	incomes[i] = in
	return l.Replace(incomes, cloneExpenses(d.Expenses)), in, nil
}

// DeleteIncome removes the income with id.
func (l *Ledger) DeleteIncome(d model.FinancialData, id string) (model.FinancialData, error) {
	i := d.FindIncome(id)
	if i < 0 {
		return d, notFound("income", id)
	}
	incomes := make([]model.Income, 0, len(d.Incomes)-1)
	incomes = append(incomes, d.Incomes[:i]...)
	incomes = append(incomes, d.Incomes[i+1:]...)
	return l.Replace(incomes, cloneExpenses(d.Expenses)), nil
}
