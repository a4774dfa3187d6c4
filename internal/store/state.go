package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"
)

// StateKey is the key the serialized FinancialData lives under.
const StateKey = "heartlines-financial-data"

// KV is the subset of Store used for state persistence.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type incomeJSON struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Amount    float64         `json:"amount"`
	Frequency model.Frequency `json:"frequency"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type expenseJSON struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Category    model.Category  `json:"category"`
	Date        time.Time       `json:"date"`
	IsRecurring bool            `json:"isRecurring"`
	Frequency   model.Frequency `json:"frequency,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type recommendationJSON struct {
	Category          model.Category `json:"category"`
	RecommendedAmount float64        `json:"recommendedAmount"`
	ActualAmount      float64        `json:"actualAmount"`
	Percentage        float64        `json:"percentage"`
	Status            model.Status   `json:"status"`
}

type analysisJSON struct {
	TotalIncome       float64              `json:"totalIncome"`
	TotalExpenses     float64              `json:"totalExpenses"`
	NetIncome         float64              `json:"netIncome"`
	SavingsRate       float64              `json:"savingsRate"`
	Recommendations   []recommendationJSON `json:"recommendations"`
	NeedsPercentage   float64              `json:"needsPercentage"`
	WantsPercentage   float64              `json:"wantsPercentage"`
	SavingsPercentage float64              `json:"savingsPercentage"`
}

type stateJSON struct {
	Incomes        []incomeJSON  `json:"incomes"`
	Expenses       []expenseJSON `json:"expenses"`
	BudgetAnalysis analysisJSON  `json:"budgetAnalysis"`
}

// Encode serializes d to the stored JSON blob. Timestamps are written in UTC.
func Encode(d model.FinancialData) ([]byte, error) {
	s := stateJSON{
		Incomes:  make([]incomeJSON, 0, len(d.Incomes)),
		Expenses: make([]expenseJSON, 0, len(d.Expenses)),
	}
	for _, in := range d.Incomes {
		s.Incomes = append(s.Incomes, incomeJSON{
			ID:        in.ID,
			Source:    in.Source,
			Amount:    in.Amount,
			Frequency: in.Frequency,
			CreatedAt: in.CreatedAt.UTC(),
			UpdatedAt: in.UpdatedAt.UTC(),
		})
	}
	for _, e := range d.Expenses {
		ej := expenseJSON{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount,
			Category:    e.Category,
			Date:        e.Date.UTC(),
			IsRecurring: e.IsRecurring,
			CreatedAt:   e.CreatedAt.UTC(),
			UpdatedAt:   e.UpdatedAt.UTC(),
		}
		if e.IsRecurring {
			ej.Frequency = e.Frequency
		}
		s.Expenses = append(s.Expenses, ej)
	}

	a := d.BudgetAnalysis
	s.BudgetAnalysis = analysisJSON{
		TotalIncome:       a.TotalIncome,
		TotalExpenses:     a.TotalExpenses,
		NetIncome:         a.NetIncome,
		SavingsRate:       a.SavingsRate,
		Recommendations:   make([]recommendationJSON, 0, len(a.Recommendations)),
		NeedsPercentage:   a.NeedsPercentage,
		WantsPercentage:   a.WantsPercentage,
		SavingsPercentage: a.SavingsPercentage,
	}
	for _, r := range a.Recommendations {
		s.BudgetAnalysis.Recommendations = append(s.BudgetAnalysis.Recommendations, recommendationJSON(r))
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// Decode parses a stored blob. The stored analysis is returned as is; use
// LoadState to get a recomputed one.
func Decode(data []byte) (model.FinancialData, error) {
	var s stateJSON
	if err := json.Unmarshal(data, &s); err != nil {
		return model.FinancialData{}, fmt.Errorf("decoding state: %w", err)
	}

	d := model.FinancialData{
		Incomes:  make([]model.Income, 0, len(s.Incomes)),
		Expenses: make([]model.Expense, 0, len(s.Expenses)),
	}
	for _, in := range s.Incomes {
		d.Incomes = append(d.Incomes, model.Income(in))
	}
	for _, e := range s.Expenses {
		exp := model.Expense(e)
		if !exp.IsRecurring {
			exp.Frequency = ""
		}
		d.Expenses = append(d.Expenses, exp)
	}

	a := s.BudgetAnalysis
	d.BudgetAnalysis = model.BudgetAnalysis{
		TotalIncome:       a.TotalIncome,
		TotalExpenses:     a.TotalExpenses,
		NetIncome:         a.NetIncome,
		SavingsRate:       a.SavingsRate,
		Recommendations:   make([]model.BudgetRecommendation, 0, len(a.Recommendations)),
		NeedsPercentage:   a.NeedsPercentage,
		WantsPercentage:   a.WantsPercentage,
		SavingsPercentage: a.SavingsPercentage,
	}
	for _, r := range a.Recommendations {
		d.BudgetAnalysis.Recommendations = append(d.BudgetAnalysis.Recommendations, model.BudgetRecommendation(r))
	}
	return d, nil
}

// ReadState returns the stored state with its analysis recomputed for asOf.
// The bool is false when nothing has been saved yet.
func ReadState(ctx context.Context, kv KV, asOf time.Time) (model.FinancialData, bool, error) {
	data, ok, err := kv.Get(ctx, StateKey)
	if err != nil || !ok {
		return model.DefaultFinancialData(), false, err
	}
	d, err := Decode(data)
	if err != nil {
		return model.DefaultFinancialData(), false, err
	}
	d.BudgetAnalysis = pipeline.Analyze(d.Incomes, d.Expenses, asOf)
	return d, true, nil
}

// LoadState reads the stored state and recomputes its analysis for asOf.
// A missing, unreadable or malformed blob yields the default state.
func LoadState(ctx context.Context, kv KV, log logrus.FieldLogger, asOf time.Time) model.FinancialData {
	d, _, err := ReadState(ctx, kv, asOf)
	if err != nil {
		log.WithError(err).WithField("key", StateKey).Warn("could not load financial data, starting empty")
		return model.DefaultFinancialData()
	}
	return d
}

// SaveState writes d under StateKey.
func SaveState(ctx context.Context, kv KV, d model.FinancialData) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	if err := kv.Set(ctx, StateKey, data); err != nil {
		return fmt.Errorf("saving financial data: %w", err)
	}
	return nil
}
