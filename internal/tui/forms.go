package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/ledger"
	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

const dateLayout = "2006-01-02"

// incomeFormValues backs the add/edit income form. ID is empty when adding.
type incomeFormValues struct {
	ID        string
	Source    string
	Amount    string
	Frequency model.Frequency
}

// expenseFormValues backs the add/edit expense form. ID is empty when adding.
type expenseFormValues struct {
	ID          string
	Description string
	Amount      string
	Category    model.Category
	Date        string
	Recurring   bool
	Frequency   model.Frequency
}

// deleteTarget backs the delete confirmation.
type deleteTarget struct {
	ID        string
	Label     string
	Income    bool
	Confirmed bool
}

func newIncomeValues(in *model.Income) *incomeFormValues {
	if in == nil {
		return &incomeFormValues{Frequency: model.Monthly}
	}
	return &incomeFormValues{
		ID:        in.ID,
		Source:    in.Source,
		Amount:    formatAmountInput(in.Amount),
		Frequency: in.Frequency,
	}
}

// newExpenseValues prefills the form from e, or with defaults dated on
// defaultDate when e is nil.
func newExpenseValues(e *model.Expense, defaultDate time.Time) *expenseFormValues {
	if e == nil {
		return &expenseFormValues{
			Category:  model.Other,
			Date:      defaultDate.Format(dateLayout),
			Frequency: model.Monthly,
		}
	}
	freq := e.Frequency
	if freq == "" {
		freq = model.Monthly
	}
	return &expenseFormValues{
		ID:          e.ID,
		Description: e.Description,
		Amount:      formatAmountInput(e.Amount),
		Category:    e.Category,
		Date:        e.Date.Format(dateLayout),
		Recurring:   e.IsRecurring,
		Frequency:   freq,
	}
}

func formatAmountInput(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validAmountInput(s string) error {
	v, err := cli.ParseAmount(s)
	if err != nil {
		return errors.New("enter a number, e.g. 1250.50")
	}
	if v <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}

func validDateInput(s string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func frequencyOptions() []huh.Option[model.Frequency] {
	opts := make([]huh.Option[model.Frequency], len(model.Frequencies))
	for i, f := range model.Frequencies {
		opts[i] = huh.NewOption(f.Label(), f)
	}
	return opts
}

func categoryOptions() []huh.Option[model.Category] {
	opts := make([]huh.Option[model.Category], len(model.Categories))
	for i, c := range model.Categories {
		opts[i] = huh.NewOption(c.Label(), c)
	}
	return opts
}

// formKeyMap lets esc cancel a form as well as ctrl+c.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	return km
}

func formTheme() *huh.Theme {
	if theme.Active.Name == theme.Terminal.Name {
		return huh.ThemeBase16()
	}
	return huh.ThemeCharm()
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).
		WithTheme(formTheme()).
		WithKeyMap(formKeyMap()).
		WithShowHelp(true)
}

func newIncomeForm(v *incomeFormValues) *huh.Form {
	title := "Add income"
	if v.ID != "" {
		title = "Edit income"
	}
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Source").
				Placeholder("Salary").
				CharLimit(80).
				Value(&v.Source).
				Validate(requiredText),
			huh.NewInput().
				Title("Amount").
				Placeholder("4200.00").
				Value(&v.Amount).
				Validate(validAmountInput),
			huh.NewSelect[model.Frequency]().
				Title("Frequency").
				Options(frequencyOptions()...).
				Value(&v.Frequency),
		).Title(title),
	)
}

func newExpenseForm(v *expenseFormValues) *huh.Form {
	title := "Add expense"
	if v.ID != "" {
		title = "Edit expense"
	}
	return newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Placeholder("Groceries").
				CharLimit(120).
				Value(&v.Description).
				Validate(requiredText),
			huh.NewInput().
				Title("Amount").
				Placeholder("64.50").
				Value(&v.Amount).
				Validate(validAmountInput),
			huh.NewSelect[model.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Height(6).
				Value(&v.Category),
			huh.NewInput().
				Title("Date").
				Placeholder(dateLayout).
				Value(&v.Date).
				Validate(validDateInput),
			huh.NewConfirm().
				Title("Recurring?").
				Affirmative("Yes").
				Negative("No").
				Value(&v.Recurring),
		).Title(title),
		huh.NewGroup(
			huh.NewSelect[model.Frequency]().
				Title("Repeats").
				Options(frequencyOptions()...).
				Value(&v.Frequency),
		).WithHideFunc(func() bool { return !v.Recurring }),
	)
}

func newDeleteForm(v *deleteTarget) *huh.Form {
	kind := "expense"
	if v.Income {
		kind = "income"
	}
	return newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s %q?", kind, v.Label)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.Confirmed),
		),
	)
}

func (a App) formWidth() int {
	w := a.width - 10
	return max(40, min(w, 64))
}

func (a App) openForm(kind formKind, f *huh.Form) (App, tea.Cmd) {
	a.form = f.WithWidth(a.formWidth())
	a.formKind = kind
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.form, a.formKind = nil, formNone
		return a.submitForm(kind)
	case huh.StateAborted:
		a.form, a.formKind = nil, formNone
		return a, nil
	}
	return a, cmd
}

func (a App) submitForm(kind formKind) (App, tea.Cmd) {
	switch kind {
	case formIncome:
		return a.submitIncome(a.incomeVals)
	case formExpense:
		return a.submitExpense(a.expenseVals)
	case formDelete:
		return a.submitDelete(a.deleteVals)
	case formSetup:
		return a.applySetup(a.setupVals)
	}
	return a, nil
}

func (a App) submitIncome(v *incomeFormValues) (App, tea.Cmd) {
	amount, err := cli.ParseAmount(v.Amount)
	if err != nil {
		return a.fail(err)
	}

	if v.ID == "" {
		d, in, err := a.ledger.AddIncome(a.data, ledger.IncomeInput{
			Source:    v.Source,
			Amount:    amount,
			Frequency: v.Frequency,
		})
		if err != nil {
			return a.fail(err)
		}
		a.log.WithField("id", in.ID).Info("income added")
		a.incomeCursor = len(d.Incomes) - 1
		return a.commit(d, "Added "+in.Source)
	}

	d, in, err := a.ledger.UpdateIncome(a.data, v.ID, ledger.IncomePatch{
		Source:    &v.Source,
		Amount:    &amount,
		Frequency: &v.Frequency,
	})
	if err != nil {
		return a.fail(err)
	}
	a.log.WithField("id", in.ID).Info("income updated")
	return a.commit(d, "Updated "+in.Source)
}

func (a App) submitExpense(v *expenseFormValues) (App, tea.Cmd) {
	amount, err := cli.ParseAmount(v.Amount)
	if err != nil {
		return a.fail(err)
	}
	date, err := cli.ParseDate(v.Date, a.month.Location())
	if err != nil {
		return a.fail(err)
	}

	if v.ID == "" {
		d, e, err := a.ledger.AddExpense(a.data, ledger.ExpenseInput{
			Description: v.Description,
			Amount:      amount,
			Category:    v.Category,
			Date:        date,
			IsRecurring: v.Recurring,
			Frequency:   v.Frequency,
		})
		if err != nil {
			return a.fail(err)
		}
		a.log.WithField("id", e.ID).Info("expense added")
		return a.commit(d, "Added "+e.Description)
	}

	d, e, err := a.ledger.UpdateExpense(a.data, v.ID, ledger.ExpensePatch{
		Description: &v.Description,
		Amount:      &amount,
		Category:    &v.Category,
		Date:        &date,
		IsRecurring: &v.Recurring,
		Frequency:   &v.Frequency,
	})
	if err != nil {
		return a.fail(err)
	}
	a.log.WithField("id", e.ID).Info("expense updated")
	return a.commit(d, "Updated "+e.Description)
}

func (a App) submitDelete(v *deleteTarget) (App, tea.Cmd) {
	if !v.Confirmed {
		return a, nil
	}

	var (
		d   model.FinancialData
		err error
	)
	if v.Income {
		d, err = a.ledger.DeleteIncome(a.data, v.ID)
	} else {
		d, err = a.ledger.DeleteExpense(a.data, v.ID)
	}
	if err != nil {
		return a.fail(err)
	}
	a.log.WithField("id", v.ID).Info("deleted")
	return a.commit(d, "Deleted "+v.Label)
}

// defaultExpenseDate is today when viewing the current month, otherwise the
// first of the viewed month.
func (a App) defaultExpenseDate() time.Time {
	now := a.ledger.Now()
	if pipeline.SameMonth(now, a.month) {
		return now.In(a.month.Location())
	}
	return pipeline.MonthStart(a.month)
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Focus).
		Padding(1, 2).
		Render(a.form.View())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
