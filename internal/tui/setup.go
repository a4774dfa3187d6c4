package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/heartlines/internal/config"
	"github.com/theirongolddev/heartlines/internal/tui/theme"
)

// setupValues backs the first-run setup form.
type setupValues struct {
	Currency    string
	Theme       string
	TrendMonths int
}

var trendMonthOptions = []int{3, 6, 12, 24}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		Currency:    cfg.General.CurrencySymbol,
		Theme:       theme.ByName(cfg.Appearance.Theme).Name,
		TrendMonths: cfg.General.TrendMonths,
	}
}

func newSetupForm(v *setupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	monthOpts := make([]huh.Option[int], 0, len(trendMonthOptions))
	for _, n := range trendMonthOptions {
		monthOpts = append(monthOpts, huh.NewOption(fmt.Sprintf("%d months", n), n))
	}

	return newForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to heartlines").
				Description("Track income and expenses and see how your month\nstacks up against the 50/30/20 rule.\n\nLet's set a few preferences."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Description("Shown in front of every amount.").
				CharLimit(4).
				Value(&v.Currency).
				Validate(requiredText),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
			huh.NewSelect[int]().
				Title("Trend window").
				Description("How many months the dashboard trend covers.").
				Options(monthOpts...).
				Value(&v.TrendMonths),
		),
	)
}

// apply returns cfg with the chosen preferences.
func (v *setupValues) apply(cfg config.Config) config.Config {
	cfg.General.CurrencySymbol = strings.TrimSpace(v.Currency)
	cfg.Appearance.Theme = v.Theme
	if v.TrendMonths > 0 {
		cfg.General.TrendMonths = v.TrendMonths
	}
	return cfg
}

// RunSetup runs the preferences form on its own, outside the dashboard, and
// returns cfg with the answers applied. huh.ErrUserAborted is returned when
// the form is cancelled.
func RunSetup(cfg config.Config) (config.Config, error) {
	v := newSetupValues(cfg)
	if err := newSetupForm(v).Run(); err != nil {
		return cfg, err
	}
	return v.apply(cfg), nil
}

// applySetup stores the chosen preferences and activates them.
func (a App) applySetup(v *setupValues) (App, tea.Cmd) {
	cfg := v.apply(a.cfg)

	theme.SetActive(cfg.Appearance.Theme)
	a.cfg = cfg
	a.recompute()

	if err := a.saveConfig(cfg); err != nil {
		a.log.WithError(err).Warn("could not save config")
		cmd := a.setFlash("Settings apply to this session only: "+err.Error(), true)
		return a, cmd
	}
	cmd := a.setFlash("Preferences saved", false)
	return a, cmd
}
