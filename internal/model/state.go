package model

// FinancialData is the root application state. BudgetAnalysis is derived from
// the two lists and is recomputed whenever they change or are loaded.
type FinancialData struct {
	Incomes        []Income
	Expenses       []Expense
	BudgetAnalysis BudgetAnalysis
}

// DefaultFinancialData returns the empty state used on first run and whenever
// stored data is missing or unreadable.
func DefaultFinancialData() FinancialData {
	return FinancialData{
		Incomes:        []Income{},
		Expenses:       []Expense{},
		BudgetAnalysis: DefaultBudgetAnalysis(),
	}
}

// FindIncome returns the index of the income with id, or -1.
func (d FinancialData) FindIncome(id string) int {
	for i, in := range d.Incomes {
		if in.ID == id {
			return i
		}
	}
	return -1
}

// FindExpense returns the index of the expense with id, or -1.
func (d FinancialData) FindExpense(id string) int {
	for i, e := range d.Expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}
