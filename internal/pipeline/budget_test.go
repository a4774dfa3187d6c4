package pipeline

import (
	"testing"

	"github.com/theirongolddev/heartlines/internal/model"
)

func findRec(t *testing.T, a model.BudgetAnalysis, c model.Category) model.BudgetRecommendation {
	t.Helper()
	for _, r := range a.Recommendations {
		if r.Category == c {
			return r
		}
	}
	t.Fatalf("no recommendation for %s", c)
	return model.BudgetRecommendation{}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		actual, recommended float64
		want                model.Status
	}{
		{0, 0, model.StatusOnTrack},
		{100, 100, model.StatusOnTrack},
		{110, 100, model.StatusOnTrack},
		{90, 100, model.StatusOnTrack},
		{110.01, 100, model.StatusOver},
		{89.99, 100, model.StatusUnder},
		{1, 0, model.StatusOver},
		{0, 50, model.StatusUnder},
	}
	for _, tt := range tests {
		if got := Classify(tt.actual, tt.recommended); got != tt.want {
			t.Fatalf("Classify(%.2f, %.2f) = %q, want %q", tt.actual, tt.recommended, got, tt.want)
		}
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	rank := map[model.Status]int{model.StatusUnder: 0, model.StatusOnTrack: 1, model.StatusOver: 2}
	prev := -1
	for actual := 0.0; actual <= 300; actual += 0.5 {
		r := rank[Classify(actual, 150)]
		if r < prev {
			t.Fatalf("status went down at actual=%.2f", actual)
		}
		prev = r
	}
}

func TestAnalyze_EmptyData(t *testing.T) {
	a := Analyze(nil, nil, asOf)
	if len(a.Recommendations) != len(DefaultAllocations) {
		t.Fatalf("recommendations = %d, want %d", len(a.Recommendations), len(DefaultAllocations))
	}
	for _, r := range a.Recommendations {
		if r.RecommendedAmount != 0 || r.ActualAmount != 0 {
			t.Fatalf("%s: recommended=%.2f actual=%.2f, want zeros", r.Category, r.RecommendedAmount, r.ActualAmount)
		}
		if r.Status != model.StatusOnTrack {
			t.Fatalf("%s: status = %q, want on-track", r.Category, r.Status)
		}
	}
	if a.SavingsRate != 0 || a.NetIncome != 0 {
		t.Fatalf("empty analysis has rate=%.2f net=%.2f", a.SavingsRate, a.NetIncome)
	}
	if a.NeedsPercentage != 50 || a.WantsPercentage != 30 || a.SavingsPercentage != 20 {
		t.Fatalf("split = %.0f/%.0f/%.0f, want 50/30/20", a.NeedsPercentage, a.WantsPercentage, a.SavingsPercentage)
	}
}

func TestAnalyze_HousingOverBudget(t *testing.T) {
	incomes := []model.Income{{Source: "Salary", Amount: 5000, Frequency: model.Monthly}}
	expenses := []model.Expense{expense(model.Housing, 2000, asOf)}

	a := Analyze(incomes, expenses, asOf)
	housing := findRec(t, a, model.Housing)
	if !approx(housing.RecommendedAmount, 750) {
		t.Fatalf("housing recommended = %.4f, want 750", housing.RecommendedAmount)
	}
	if !approx(housing.ActualAmount, 2000) {
		t.Fatalf("housing actual = %.4f, want 2000", housing.ActualAmount)
	}
	if housing.Status != model.StatusOver {
		t.Fatalf("housing status = %q, want over", housing.Status)
	}
	if housing.Percentage != 15 {
		t.Fatalf("housing percentage = %.0f, want 15", housing.Percentage)
	}
	if !approx(a.SavingsRate, 60) {
		t.Fatalf("SavingsRate = %.4f, want 60", a.SavingsRate)
	}
}

func TestAnalyze_RecommendationTable(t *testing.T) {
	incomes := []model.Income{{Source: "Salary", Amount: 10000, Frequency: model.Monthly}}
	a := Analyze(incomes, nil, asOf)

	want := map[model.Category]float64{
		model.Housing:        1500,
		model.Utilities:      1000,
		model.Food:           1500,
		model.Transportation: 1000,
		model.Entertainment:  1200,
		model.Shopping:       1800,
		model.Savings:        2000,
	}
	var sum float64
	for c, amount := range want {
		r := findRec(t, a, c)
		if !approx(r.RecommendedAmount, amount) {
			t.Fatalf("%s recommended = %.4f, want %.4f", c, r.RecommendedAmount, amount)
		}
		if r.Status != model.StatusUnder {
			t.Fatalf("%s status = %q, want under", c, r.Status)
		}
		sum += r.RecommendedAmount
	}
	if !approx(sum, 10000) {
		t.Fatalf("recommendations sum to %.4f, want full income", sum)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	incomes := []model.Income{
		{Source: "Salary", Amount: 2500, Frequency: model.BiWeekly},
		{Source: "Bonus", Amount: 6000, Frequency: model.Yearly},
	}
	expenses := []model.Expense{
		expense(model.Food, 420, asOf),
		recurring(model.Housing, 1800, model.Monthly, asOf.AddDate(0, -4, 0)),
		recurring(model.Entertainment, 15, model.Weekly, asOf),
	}
	a := Analyze(incomes, expenses, asOf)
	b := Analyze(incomes, expenses, asOf)
	if a.TotalIncome != b.TotalIncome || a.TotalExpenses != b.TotalExpenses {
		t.Fatal("Analyze is not deterministic")
	}
	for i := range a.Recommendations {
		if a.Recommendations[i] != b.Recommendations[i] {
			t.Fatalf("recommendation %d differs between runs", i)
		}
	}
}

func TestAnalyze_CategoryNormalizationAsymmetry(t *testing.T) {
	incomes := []model.Income{{Source: "Salary", Amount: 1000, Frequency: model.Monthly}}
	expenses := []model.Expense{recurring(model.Entertainment, 100, model.Weekly, asOf)}

	a := Analyze(incomes, expenses, asOf)
	if !approx(a.TotalExpenses, 100) {
		t.Fatalf("TotalExpenses = %.4f, want 100", a.TotalExpenses)
	}
	ent := findRec(t, a, model.Entertainment)
	if !approx(ent.ActualAmount, 433) {
		t.Fatalf("entertainment actual = %.4f, want 433", ent.ActualAmount)
	}
}

func TestRulesAndCounts(t *testing.T) {
	incomes := []model.Income{{Source: "Salary", Amount: 5000, Frequency: model.Monthly}}
	expenses := []model.Expense{expense(model.Housing, 2000, asOf)}
	a := Analyze(incomes, expenses, asOf)

	rules := Rules(a)
	if len(rules) != 3 {
		t.Fatalf("rules len = %d, want 3", len(rules))
	}
	if !approx(rules[0].Amount, 2500) || !approx(rules[1].Amount, 1500) || !approx(rules[2].Amount, 1000) {
		t.Fatalf("rule amounts = %.0f/%.0f/%.0f, want 2500/1500/1000", rules[0].Amount, rules[1].Amount, rules[2].Amount)
	}

	counts := CountByStatus(a.Recommendations)
	if counts[model.StatusOver] != 1 || counts[model.StatusUnder] != 6 {
		t.Fatalf("counts = %v, want 1 over and 6 under", counts)
	}
}
