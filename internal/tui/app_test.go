package tui

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/heartlines/internal/config"
	"github.com/theirongolddev/heartlines/internal/ledger"
	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/store"
	"github.com/theirongolddev/heartlines/internal/tui/components"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

var now = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

type memKV struct {
	data map[string][]byte
	err  error
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = value
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleData() model.FinancialData {
	return model.FinancialData{
		Incomes: []model.Income{
			{ID: "income-1", Source: "Salary", Amount: 4000, Frequency: model.Monthly},
		},
		Expenses: []model.Expense{
			{ID: "expense-1", Description: "Rent", Amount: 1500, Category: model.Housing, Date: now.AddDate(0, -2, 0), IsRecurring: true, Frequency: model.Monthly},
			{ID: "expense-2", Description: "Groceries", Amount: 120, Category: model.Food, Date: now},
			{ID: "expense-3", Description: "Concert", Amount: 80, Category: model.Entertainment, Date: now.AddDate(0, -1, 0)},
		},
	}
}

func newTestApp(kv store.KV) App {
	seq := 0
	l := ledger.New(
		ledger.WithClock(func() time.Time { return now }),
		ledger.WithIDs(func(prefix string) string {
			seq++
			return prefix + "-new-" + string(rune('0'+seq))
		}),
	)
	cfg := config.DefaultConfig()
	return NewApp(Options{
		Store:      kv,
		Ledger:     l,
		Config:     cfg,
		Log:        quietLogger(),
		SaveConfig: func(config.Config) error { return nil },
	})
}

func loadedApp(t *testing.T, d model.FinancialData) App {
	t.Helper()
	a := newTestApp(&memKV{})
	m, _ := a.Update(DataLoadedMsg{Data: d, Found: true})
	m, _ = m.(App).Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m.(App)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		m, _ := a.Update(keyPress(k))
		a = m.(App)
	}
	return a
}

// drain runs cmd and every command it batches, returning the messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, drain(c)...)
	}
	return out
}

func savedErrs(msgs []tea.Msg) []error {
	var errs []error
	for _, m := range msgs {
		if s, ok := m.(SavedMsg); ok {
			errs = append(errs, s.Err)
		}
	}
	return errs
}

func TestDataLoadedRecomputesForViewedMonth(t *testing.T) {
	a := loadedApp(t, sampleData())
	if !a.loaded {
		t.Fatal("app not marked loaded")
	}
	if a.analysis.TotalIncome != 4000 {
		t.Fatalf("TotalIncome = %.2f, want 4000", a.analysis.TotalIncome)
	}
	// Rent is recurring (1500) and groceries is this month (120).
	if a.analysis.TotalExpenses != 1620 {
		t.Fatalf("TotalExpenses = %.2f, want 1620", a.analysis.TotalExpenses)
	}
	if len(a.summary.MonthlyTrend) != config.DefaultConfig().General.TrendMonths {
		t.Fatalf("trend len = %d", len(a.summary.MonthlyTrend))
	}
	if len(a.expenses) != 3 || a.expenses[0].ID != "expense-2" {
		t.Fatalf("expense list not sorted newest first: %+v", a.expenses)
	}
}

func TestTabKeys(t *testing.T) {
	a := loadedApp(t, sampleData())
	tests := []struct {
		key  string
		want int
	}{
		{"i", components.TabIncome},
		{"e", components.TabExpenses},
		{"b", components.TabBudget},
		{"d", components.TabDashboard},
		{"left", components.TabBudget},
		{"right", components.TabDashboard},
	}
	for _, tt := range tests {
		a = press(a, tt.key)
		if a.activeTab != tt.want {
			t.Fatalf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

func TestMonthNavigation(t *testing.T) {
	a := loadedApp(t, sampleData())
	a = press(a, "[")
	if a.month.Month() != time.September {
		t.Fatalf("month = %s, want September", a.month.Month())
	}
	// September: rent recurring + concert dated in September.
	if a.analysis.TotalExpenses != 1580 {
		t.Fatalf("September expenses = %.2f, want 1580", a.analysis.TotalExpenses)
	}
	a = press(a, "]", "]")
	if a.month.Month() != time.November {
		t.Fatalf("month = %s, want November", a.month.Month())
	}
	a = press(a, "t")
	if a.month.Month() != time.October {
		t.Fatalf("month = %s, want October", a.month.Month())
	}
}

func TestMonthNavigationFromMonthEnd(t *testing.T) {
	a := loadedApp(t, sampleData())
	a.month = time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC)
	a = press(a, "[")
	if a.month.Month() != time.September {
		t.Fatalf("Oct 31 minus one month = %s, want September", a.month.Month())
	}
}

func TestExpenseFilters(t *testing.T) {
	a := loadedApp(t, sampleData())
	a.activeTab = components.TabExpenses

	a = press(a, "m")
	if len(a.expenses) != 2 {
		t.Fatalf("month filter: %d expenses, want 2 (groceries + recurring rent)", len(a.expenses))
	}
	a = press(a, "c")
	if a.exp.category != model.Housing || len(a.expenses) != 1 {
		t.Fatalf("category filter: %s with %d expenses", a.exp.category, len(a.expenses))
	}
	a = press(a, "esc")
	if len(a.expenses) != 3 {
		t.Fatalf("after clearing filters: %d expenses, want 3", len(a.expenses))
	}

	a = press(a, "/", "c", "o", "n", "enter")
	if a.exp.query != "con" || len(a.expenses) != 1 || a.expenses[0].Description != "Concert" {
		t.Fatalf("search %q matched %+v", a.exp.query, a.expenses)
	}
}

func TestNextCategoryCycles(t *testing.T) {
	c := model.Category("")
	for range model.Categories {
		c = nextCategory(c)
		if !c.Valid() {
			t.Fatalf("nextCategory produced %q", c)
		}
	}
	if nextCategory(c) != "" {
		t.Fatal("cycle should return to all categories after the last one")
	}
}

func TestSubmitIncomeAddsAndSaves(t *testing.T) {
	kv := &memKV{}
	a := loadedApp(t, sampleData())
	a.kv = kv
	a.flashTTL = time.Millisecond

	a, cmd := a.submitIncome(&incomeFormValues{Source: "Freelance", Amount: "1,000", Frequency: model.Weekly})
	if len(a.data.Incomes) != 2 {
		t.Fatalf("incomes = %d, want 2", len(a.data.Incomes))
	}
	added := a.data.Incomes[1]
	if added.ID != "income-new-1" || added.Amount != 1000 || !added.CreatedAt.Equal(now) {
		t.Fatalf("added income = %+v", added)
	}
	if math.Abs(a.analysis.TotalIncome-8330) > 1e-6 {
		t.Fatalf("TotalIncome = %.2f, want 8330", a.analysis.TotalIncome)
	}
	if a.incomeCursor != 1 {
		t.Fatalf("cursor = %d, want the new row", a.incomeCursor)
	}

	errs := savedErrs(drain(cmd))
	if len(errs) != 1 || errs[0] != nil {
		t.Fatalf("save results = %v", errs)
	}
	stored, found, err := store.ReadState(context.Background(), kv, now)
	if err != nil || !found {
		t.Fatalf("ReadState: found=%v err=%v", found, err)
	}
	if len(stored.Incomes) != 2 {
		t.Fatalf("stored incomes = %d, want 2", len(stored.Incomes))
	}
}

func TestSubmitIncomeUpdate(t *testing.T) {
	a := loadedApp(t, sampleData())
	a.flashTTL = time.Millisecond
	vals := newIncomeValues(&a.data.Incomes[0])
	if vals.Amount != "4000" {
		t.Fatalf("prefilled amount = %q, want 4000", vals.Amount)
	}
	vals.Amount = "4500.50"

	a, _ = a.submitIncome(vals)
	if got := a.data.Incomes[0]; got.Amount != 4500.5 || got.ID != "income-1" {
		t.Fatalf("updated income = %+v", got)
	}
}

func TestSubmitExpenseRecurringAndOneOff(t *testing.T) {
	a := loadedApp(t, sampleData())
	a.flashTTL = time.Millisecond

	vals := newExpenseValues(nil, a.defaultExpenseDate())
	if vals.Date != "2026-10-16" || vals.Category != model.Other {
		t.Fatalf("defaults = %+v", vals)
	}
	vals.Description = "Gym"
	vals.Amount = "$40"
	vals.Category = model.Healthcare
	vals.Recurring = true
	vals.Frequency = model.Monthly

	a, _ = a.submitExpense(vals)
	if len(a.data.Expenses) != 4 {
		t.Fatalf("expenses = %d, want 4", len(a.data.Expenses))
	}
	gym := a.data.Expenses[3]
	if !gym.IsRecurring || gym.Frequency != model.Monthly || gym.Amount != 40 {
		t.Fatalf("gym = %+v", gym)
	}

	edit := newExpenseValues(&gym, a.month)
	edit.Recurring = false
	a, _ = a.submitExpense(edit)
	if got := a.data.Expenses[3]; got.IsRecurring || got.Frequency != "" {
		t.Fatalf("one-off expense kept its frequency: %+v", got)
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	a := loadedApp(t, sampleData())
	a.flashTTL = time.Millisecond

	a, _ = a.submitExpense(&expenseFormValues{Description: "x", Amount: "12", Category: model.Food, Date: "16/10/2026"})
	if !a.flashErr || len(a.data.Expenses) != 3 {
		t.Fatalf("bad date accepted: flash=%q", a.flash)
	}
	a, _ = a.submitIncome(&incomeFormValues{Source: "  ", Amount: "10", Frequency: model.Monthly})
	if !a.flashErr || len(a.data.Incomes) != 1 {
		t.Fatalf("empty source accepted: flash=%q", a.flash)
	}
}

func TestSubmitDelete(t *testing.T) {
	a := loadedApp(t, sampleData())
	a.flashTTL = time.Millisecond

	a, _ = a.submitDelete(&deleteTarget{ID: "expense-2", Label: "Groceries"})
	if len(a.data.Expenses) != 3 {
		t.Fatal("unconfirmed delete removed the expense")
	}
	a, _ = a.submitDelete(&deleteTarget{ID: "expense-2", Label: "Groceries", Confirmed: true})
	if len(a.data.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2", len(a.data.Expenses))
	}
	a, _ = a.submitDelete(&deleteTarget{ID: "income-1", Income: true, Label: "Salary", Confirmed: true})
	if len(a.data.Incomes) != 0 || a.analysis.TotalIncome != 0 {
		t.Fatalf("income not deleted: %+v", a.data.Incomes)
	}
}

func TestSaveFailureFlashes(t *testing.T) {
	kv := &memKV{err: errors.New("disk full")}
	a := loadedApp(t, sampleData())
	a.kv = kv
	a.flashTTL = time.Millisecond

	a, cmd := a.submitDelete(&deleteTarget{ID: "expense-1", Label: "Rent", Confirmed: true})
	for _, msg := range drain(cmd) {
		if s, ok := msg.(SavedMsg); ok {
			m, _ := a.Update(s)
			a = m.(App)
		}
	}
	if !a.flashErr || !strings.Contains(a.flash, "disk full") {
		t.Fatalf("flash = %q, want save error", a.flash)
	}
}

func TestKeysOpenForms(t *testing.T) {
	a := loadedApp(t, sampleData())
	a = press(a, "i", "a")
	if a.form == nil || a.formKind != formIncome || a.incomeVals.ID != "" {
		t.Fatal("a on the income tab should open an empty income form")
	}

	a = loadedApp(t, sampleData())
	a = press(a, "e", "enter")
	if a.form == nil || a.formKind != formExpense || a.expenseVals.ID != "expense-2" {
		t.Fatal("enter on the expenses tab should edit the selected expense")
	}

	a = loadedApp(t, sampleData())
	a = press(a, "e", "x")
	if a.form == nil || a.formKind != formDelete || a.deleteVals.ID != "expense-2" {
		t.Fatal("x on the expenses tab should confirm deleting the selected expense")
	}

	a = press(a, "esc")
	if a.form != nil {
		t.Fatal("esc should cancel the form")
	}
}

func TestSetupShownOnFirstRun(t *testing.T) {
	var saved config.Config
	a := newTestApp(&memKV{})
	a.needSetup = true
	a.saveConfig = func(c config.Config) error { saved = c; return nil }
	a.flashTTL = time.Millisecond

	m, _ := a.Update(DataLoadedMsg{Data: model.DefaultFinancialData()})
	a = m.(App)
	if a.form == nil || a.formKind != formSetup {
		t.Fatal("setup form not opened on first run")
	}

	a.setupVals.Currency = "€"
	a.setupVals.Theme = theme.TokyoNight.Name
	a.setupVals.TrendMonths = 12
	a, _ = a.applySetup(a.setupVals)
	defer theme.SetActive(theme.FlexokiDark.Name)

	if saved.General.CurrencySymbol != "€" || saved.General.TrendMonths != 12 {
		t.Fatalf("saved config = %+v", saved.General)
	}
	if theme.Active.Name != theme.TokyoNight.Name {
		t.Fatalf("active theme = %s", theme.Active.Name)
	}
	if len(a.summary.MonthlyTrend) != 12 {
		t.Fatalf("trend len = %d, want 12", len(a.summary.MonthlyTrend))
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loadedApp(t, sampleData())
	for i := range components.Tabs {
		a.activeTab = i
		out := a.View()
		if h := lipgloss.Height(out); h != 40 {
			t.Fatalf("tab %d height = %d, want 40", i, h)
		}
		if !strings.Contains(out, components.Tabs[i].Name) {
			t.Fatalf("tab %d view misses its name", i)
		}
	}

	a.width = 60
	if !strings.Contains(a.View(), "too narrow") {
		t.Fatal("narrow terminal message missing")
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		cursor, n, rows int
		start, end      int
	}{
		{0, 5, 10, 0, 5},
		{0, 20, 10, 0, 10},
		{10, 20, 10, 5, 15},
		{19, 20, 10, 10, 20},
		{3, 20, 0, 0, 20},
	}
	for _, tt := range tests {
		s, e := visibleRange(tt.cursor, tt.n, tt.rows)
		if s != tt.start || e != tt.end {
			t.Fatalf("visibleRange(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.cursor, tt.n, tt.rows, s, e, tt.start, tt.end)
		}
	}
}
