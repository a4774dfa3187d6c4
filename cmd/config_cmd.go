// Package cmd implements the heartlines CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	source := "defaults (no config file yet)"
	if config.Exists() {
		source = config.ConfigPath()
	}
	fmt.Printf("\n  Source: %s\n", source)
	if _, err := os.Stat(config.EnvPath()); err == nil {
		fmt.Printf("  Env file: %s\n", config.EnvPath())
	}
	fmt.Println()

	rows := [][]string{
		{"general", "database", dbPath()},
		{"general", "trend_months", strconv.Itoa(cfg.General.TrendMonths)},
		{"general", "currency_symbol", cfg.General.CurrencySymbol},
		{"appearance", "theme", cfg.Appearance.Theme},
		{"daemon", "addr", cfg.Daemon.Addr},
		{"daemon", "interval_sec", strconv.Itoa(cfg.Daemon.IntervalSec)},
		{"daemon", "events_buffer", strconv.Itoa(cfg.Daemon.EventsBuffer)},
		{"log", "level", cfg.Log.Level},
		{"log", "json", strconv.FormatBool(cfg.Log.JSON)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Section", "Key", "Value"},
		Rows:    rows,
	}))

	envs := []string{config.EnvDB, config.EnvLogLevel, config.EnvTheme, config.EnvTrendMonths}
	fmt.Printf("\n  %s\n", cli.RenderMuted("Overridable from the environment: "+strings.Join(envs, " ")))
	return nil
}
