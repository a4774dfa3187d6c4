// Package tui provides the interactive Bubble Tea dashboard for heartlines.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/heartlines/internal/config"
	"github.com/theirongolddev/heartlines/internal/ledger"
	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/pipeline"
	"github.com/theirongolddev/heartlines/internal/store"
	"github.com/theirongolddev/heartlines/internal/tui/components"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

// DataLoadedMsg is sent when the stored state has been read.
type DataLoadedMsg struct {
	Data     model.FinancialData
	Found    bool
	Err      error
	LoadTime time.Duration
}

// SavedMsg is sent when a state write finishes.
type SavedMsg struct {
	Err error
}

type flashExpiredMsg struct{ seq int }

// Options wires the app to its storage, ledger and configuration.
type Options struct {
	Store      store.KV
	Ledger     *ledger.Ledger
	Config     config.Config
	Log        logrus.FieldLogger
	Month      time.Time // month to show; zero means the ledger's current month
	NeedSetup  bool
	SaveConfig func(config.Config) error // defaults to config.Save
}

type formKind int

const (
	formNone formKind = iota
	formIncome
	formExpense
	formDelete
	formSetup
)

// expenseState holds the Expenses tab list state.
type expenseState struct {
	cursor    int
	searching bool
	search    textinput.Model
	query     string
	category  model.Category // empty means all
	monthOnly bool
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	data     model.FinancialData
	loaded   bool
	loadTime time.Duration
	month    time.Time

	// Derived for the viewed month
	analysis model.BudgetAnalysis
	summary  model.DashboardSummary
	expenses []model.Expense

	kv         store.KV
	ledger     *ledger.Ledger
	cfg        config.Config
	log        logrus.FieldLogger
	saveConfig func(config.Config) error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	incomeCursor int
	exp          expenseState

	// Active huh form and the values it writes into
	form        *huh.Form
	formKind    formKind
	incomeVals  *incomeFormValues
	expenseVals *expenseFormValues
	deleteVals  *deleteTarget
	setupVals   *setupValues
	needSetup   bool

	flash    string
	flashErr bool
	flashSeq int
	flashTTL time.Duration

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160

	minContentHeight = 5
	defaultFlashTTL  = 4 * time.Second
	saveTimeout      = 5 * time.Second
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	l := opts.Ledger
	if l == nil {
		l = ledger.New()
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	month := opts.Month
	if month.IsZero() {
		month = l.Now()
	}
	saveCfg := opts.SaveConfig
	if saveCfg == nil {
		saveCfg = config.Save
	}
	if opts.Config.General.TrendMonths <= 0 {
		opts.Config.General.TrendMonths = pipeline.DefaultTrendMonths
	}

	return App{
		data:       model.DefaultFinancialData(),
		month:      month,
		kv:         opts.Store,
		ledger:     l,
		cfg:        opts.Config,
		log:        log,
		saveConfig: saveCfg,
		needSetup:  opts.NeedSetup,
		exp:        expenseState{search: newSearchInput()},
		flashTTL:   defaultFlashTTL,
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.kv, a.month),
		a.spinner.Tick,
	)
}

func (a App) currency() string {
	return a.cfg.General.CurrencySymbol
}

// recompute derives the viewed month's analysis, dashboard summary and the
// filtered expense list from the current data.
func (a *App) recompute() {
	d := a.data
	a.analysis = pipeline.Analyze(d.Incomes, d.Expenses, a.month)
	a.summary = pipeline.Summarize(d.Incomes, d.Expenses, a.cfg.General.TrendMonths, a.month)

	list := d.Expenses
	if a.exp.monthOnly {
		list = pipeline.FilterExpensesByMonth(list, a.month)
	}
	list = pipeline.FilterExpensesByCategory(list, a.exp.category)
	list = pipeline.FilterExpensesByText(list, a.exp.query)
	a.expenses = pipeline.SortExpensesByDate(list)

	a.incomeCursor = clampCursor(a.incomeCursor, len(d.Incomes))
	a.exp.cursor = clampCursor(a.exp.cursor, len(a.expenses))
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a.updateKeys(msg)

	case DataLoadedMsg:
		var flashCmd tea.Cmd
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.data = msg.Data
		if msg.Err != nil {
			a.log.WithError(msg.Err).Warn("could not load financial data, starting empty")
			flashCmd = a.setFlash("Stored data unreadable, starting empty", true)
		}
		a.recompute()

		if a.needSetup {
			a.needSetup = false
			a.setupVals = newSetupValues(a.cfg)
			return a.openForm(formSetup, newSetupForm(a.setupVals))
		}
		return a, flashCmd

	case SavedMsg:
		if msg.Err != nil {
			a.log.WithError(msg.Err).Error("save failed")
			cmd := a.setFlash("Save failed: "+msg.Err.Error(), true)
			return a, cmd
		}
		return a, nil

	case flashExpiredMsg:
		if msg.seq == a.flashSeq {
			a.flash = ""
			a.flashErr = false
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the active form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.exp.searching {
		var cmd tea.Cmd
		a.exp.search, cmd = a.exp.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.exp.searching {
		return a.updateExpenseSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case components.TabIncome:
		if m, cmd, ok := a.updateIncomeKeys(key); ok {
			return m, cmd
		}
	case components.TabExpenses:
		if m, cmd, ok := a.updateExpenseKeys(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "[":
		a.month = pipeline.MonthStart(a.month).AddDate(0, -1, 0)
		a.recompute()
	case "]":
		a.month = pipeline.MonthStart(a.month).AddDate(0, 1, 0)
		a.recompute()
	case "t":
		a.month = a.ledger.Now()
		a.recompute()
	case "r":
		return a, loadDataCmd(a.kv, a.month)
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case components.TabIncome:
		a.incomeCursor = clampCursor(a.incomeCursor+delta, len(a.data.Incomes))
	case components.TabExpenses:
		a.exp.cursor = clampCursor(a.exp.cursor+delta, len(a.expenses))
	}
}

func (a App) updateIncomeKeys(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.incomeCursor = 0
	case "G", "end":
		a.incomeCursor = clampCursor(len(a.data.Incomes)-1, len(a.data.Incomes))
	case "a", "n":
		a.incomeVals = newIncomeValues(nil)
		m, cmd := a.openForm(formIncome, newIncomeForm(a.incomeVals))
		return m, cmd, true
	case "enter":
		in, ok := a.selectedIncome()
		if !ok {
			return a, nil, true
		}
		a.incomeVals = newIncomeValues(&in)
		m, cmd := a.openForm(formIncome, newIncomeForm(a.incomeVals))
		return m, cmd, true
	case "x", "delete":
		in, ok := a.selectedIncome()
		if !ok {
			return a, nil, true
		}
		a.deleteVals = &deleteTarget{ID: in.ID, Income: true, Label: in.Source}
		m, cmd := a.openForm(formDelete, newDeleteForm(a.deleteVals))
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updateExpenseKeys(key string) (App, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)
	case "g", "home":
		a.exp.cursor = 0
	case "G", "end":
		a.exp.cursor = clampCursor(len(a.expenses)-1, len(a.expenses))
	case "/":
		a.exp.searching = true
		a.exp.search = newSearchInput()
		a.exp.search.SetValue(a.exp.query)
		a.exp.search.Focus()
		return a, textinput.Blink, true
	case "c":
		a.exp.category = nextCategory(a.exp.category)
		a.exp.cursor = 0
		a.recompute()
	case "m":
		a.exp.monthOnly = !a.exp.monthOnly
		a.exp.cursor = 0
		a.recompute()
	case "esc":
		a.exp.query = ""
		a.exp.category = ""
		a.exp.monthOnly = false
		a.recompute()
	case "a", "n":
		a.expenseVals = newExpenseValues(nil, a.defaultExpenseDate())
		m, cmd := a.openForm(formExpense, newExpenseForm(a.expenseVals))
		return m, cmd, true
	case "enter":
		e, ok := a.selectedExpense()
		if !ok {
			return a, nil, true
		}
		a.expenseVals = newExpenseValues(&e, a.month)
		m, cmd := a.openForm(formExpense, newExpenseForm(a.expenseVals))
		return m, cmd, true
	case "x", "delete":
		e, ok := a.selectedExpense()
		if !ok {
			return a, nil, true
		}
		a.deleteVals = &deleteTarget{ID: e.ID, Label: e.Description}
		m, cmd := a.openForm(formDelete, newDeleteForm(a.deleteVals))
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

// nextCategory cycles through all categories and back to "all".
func nextCategory(c model.Category) model.Category {
	if c == "" {
		return model.Categories[0]
	}
	for i, known := range model.Categories {
		if known == c && i+1 < len(model.Categories) {
			return model.Categories[i+1]
		}
	}
	return ""
}

func (a App) updateExpenseSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.exp.query = strings.TrimSpace(a.exp.search.Value())
		a.exp.searching = false
		a.exp.cursor = 0
		a.recompute()
		return a, nil
	case "esc":
		a.exp.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.exp.search, cmd = a.exp.search.Update(msg)
	return a, cmd
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "search descriptions"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 30
	return ti
}

func (a App) selectedIncome() (model.Income, bool) {
	if len(a.data.Incomes) == 0 {
		return model.Income{}, false
	}
	return a.data.Incomes[clampCursor(a.incomeCursor, len(a.data.Incomes))], true
}

func (a App) selectedExpense() (model.Expense, bool) {
	if len(a.expenses) == 0 {
		return model.Expense{}, false
	}
	return a.expenses[clampCursor(a.exp.cursor, len(a.expenses))], true
}

func (a *App) setFlash(text string, isErr bool) tea.Cmd {
	a.flashSeq++
	a.flash = text
	a.flashErr = isErr
	seq := a.flashSeq
	return tea.Tick(a.flashTTL, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

// commit installs new data, refreshes derived views and persists it.
func (a App) commit(d model.FinancialData, flash string) (App, tea.Cmd) {
	a.data = d
	a.recompute()
	flashCmd := a.setFlash(flash, false)
	return a, tea.Batch(flashCmd, saveCmd(a.kv, d))
}

func (a App) fail(err error) (App, tea.Cmd) {
	a.log.WithError(err).Warn("change rejected")
	cmd := a.setFlash(err.Error(), true)
	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  heartlines needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Focus).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ heartlines"))
	b.WriteString(subtitleStyle.Render(" · Personal Budget"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading your data..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Focus).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Key).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"d i e b", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"[ ]", "Previous / Next month"},
			{"t", "Back to this month"},
			{"j k", "Move in lists"},
		}},
		{"Income & Expenses", []struct{ key, desc string }{
			{"a", "Add"},
			{"Enter", "Edit selected"},
			{"x", "Delete selected"},
			{"/", "Search expenses"},
			{"c", "Cycle category filter"},
			{"m", "Only this month's expenses"},
			{"Esc", "Clear filters"},
		}},
		{"General", []struct{ key, desc string }{
			{"r", "Reload from disk"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderInfoRow(w)
	statusBar := components.RenderStatusBar(w, components.StatusBar{
		Hints: a.tabHints(),
		Flash: a.flash,
		Error: a.flashErr,
		Right: fmt.Sprintf("%d incomes · %d expenses", len(a.data.Incomes), len(a.data.Expenses)),
	})

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case components.TabDashboard:
		content = a.renderDashboardTab(cw)
	case components.TabIncome:
		content = a.renderIncomeTab(cw, contentH)
	case components.TabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case components.TabBudget:
		content = a.renderBudgetTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderInfoRow shows the viewed month and any active expense filters.
func (a App) renderInfoRow(w int) string {
	t := theme.Active
	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	s := pill.Render(" ◈ ") + accent.Render(a.month.Format(pipeline.MonthLabelLayout))
	if !pipeline.SameMonth(a.ledger.Now(), a.month) {
		s += pill.Render(" (press t for this month)")
	}
	if a.activeTab == components.TabExpenses {
		if a.exp.monthOnly {
			s += pill.Render(" │ ") + accent.Render("this month")
		}
		if a.exp.category != "" {
			s += pill.Render(" │ ") + accent.Render(a.exp.category.Label())
		}
		if a.exp.searching {
			s += pill.Render(" │ ") + a.exp.search.View()
		} else if a.exp.query != "" {
			s += pill.Render(" │ ") + accent.Render(fmt.Sprintf("%q", a.exp.query))
		}
	}
	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(s)
}

func (a App) tabHints() string {
	switch a.activeTab {
	case components.TabIncome:
		return "[a]dd  [enter]edit  [x]delete"
	case components.TabExpenses:
		return "[a]dd  [enter]edit  [x]delete  [/]search  [c]ategory"
	default:
		return "[ ]month"
	}
}

// ─── Commands ───────────────────────────────────────────────────

// loadDataCmd reads the stored state with its analysis computed for month.
func loadDataCmd(kv store.KV, month time.Time) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		if kv == nil {
			return DataLoadedMsg{Data: model.DefaultFinancialData(), LoadTime: time.Since(start)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		d, found, err := store.ReadState(ctx, kv, month)
		return DataLoadedMsg{Data: d, Found: found, Err: err, LoadTime: time.Since(start)}
	}
}

// saveCmd persists d in the background.
func saveCmd(kv store.KV, d model.FinancialData) tea.Cmd {
	if kv == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return SavedMsg{Err: store.SaveState(ctx, kv, d)}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// visibleRange returns the window [start, end) of n rows that fits in rows
// lines and keeps cursor on screen.
func visibleRange(cursor, n, rows int) (int, int) {
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
