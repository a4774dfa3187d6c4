package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/heartlines/internal/config"
	"github.com/theirongolddev/heartlines/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose currency, theme and trend window",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the file alone so env overrides are not written back.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cfg, err = tui.RunSetup(cfg)
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Println("  Setup cancelled, nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\n  Preferences written to %s (theme %s, %d-month trend, currency %s)\n\n",
		config.ConfigPath(), cfg.Appearance.Theme, cfg.General.TrendMonths, cfg.General.CurrencySymbol)
	return nil
}
