package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/heartlines/internal/config"
	"github.com/theirongolddev/heartlines/internal/ledger"
	"github.com/theirongolddev/heartlines/internal/logging"
	"github.com/theirongolddev/heartlines/internal/store"
	"github.com/theirongolddev/heartlines/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	month, err := asOf()
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	st, err := store.Open(dbPath())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// Logs would draw over the alt screen, so they go to a file instead.
	logPath := filepath.Join(store.DataDir(), "tui.log")
	logf, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // fixed path under the data dir
	if err != nil {
		return fmt.Errorf("open tui log file: %w", err)
	}
	defer func() { _ = logf.Close() }()
	tuiLog := logging.New(logging.Options{Level: logger.GetLevel().String(), JSON: appCfg.Log.JSON, Output: logf})

	opts := tui.Options{
		Store:     st,
		Ledger:    ledger.New(),
		Config:    appCfg,
		Log:       tuiLog,
		NeedSetup: !config.Exists(),
	}
	if flagAsOf != "" {
		opts.Month = month
	}
	if flagMonths > 0 {
		opts.Config.General.TrendMonths = flagMonths
	}

	p := tea.NewProgram(tui.NewApp(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
