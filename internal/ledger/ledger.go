// Package ledger applies add, update and delete commands to the financial
// state. Every command returns a new FinancialData with the budget analysis
// recomputed; the input value is never modified.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"
)

// Validation errors.
var (
	ErrEmptyDescription = errors.New("description must not be empty")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrInvalidFrequency = errors.New("unknown frequency")
	ErrInvalidCategory  = errors.New("unknown category")
	ErrInvalidDate      = errors.New("date must be set")
	ErrNotFound         = errors.New("not found")
)

// ID prefixes.
const (
	IncomePrefix  = "income"
	ExpensePrefix = "expense"
)

// NewID returns a fresh identifier such as "income-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Ledger applies commands to FinancialData.
type Ledger struct {
	now   func() time.Time
	newID func(prefix string) string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the time source used for timestamps and the analysis month.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDs sets the identifier generator.
func WithIDs(newID func(prefix string) string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// New creates a Ledger using the wall clock and UUID identifiers by default.
func New(opts ...Option) *Ledger {
	l := &Ledger{now: time.Now, newID: NewID}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the ledger's current time.
func (l *Ledger) Now() time.Time {
	return l.now()
}

// NewID returns a fresh identifier from the ledger's generator.
func (l *Ledger) NewID(prefix string) string {
	return l.newID(prefix)
}

// Recompute returns d with its budget analysis derived from the current lists.
func (l *Ledger) Recompute(d model.FinancialData) model.FinancialData {
	d.BudgetAnalysis = pipeline.Analyze(d.Incomes, d.Expenses, l.now())
	return d
}

// Replace swaps in new lists and recomputes the analysis.
func (l *Ledger) Replace(incomes []model.Income, expenses []model.Expense) model.FinancialData {
	if incomes == nil {
		incomes = []model.Income{}
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	return l.Recompute(model.FinancialData{Incomes: incomes, Expenses: expenses})
}

// Merge appends imported records to d.
func (l *Ledger) Merge(d model.FinancialData, incomes []model.Income, expenses []model.Expense) model.FinancialData {
	ins := append(cloneIncomes(d.Incomes), incomes...)
	exs := append(cloneExpenses(d.Expenses), expenses...)
	return l.Replace(ins, exs)
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func cloneIncomes(in []model.Income) []model.Income {
	out := make([]model.Income, len(in))
	copy(out, in)
	return out
}

func cloneExpenses(in []model.Expense) []model.Expense {
	out := make([]model.Expense, len(in))
	copy(out, in)
	return out
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func trimmed(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
