package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/heartlines/internal/cli"
	"github.com/theirongolddev/heartlines/internal/config"
	"github.com/theirongolddev/heartlines/internal/ledger"
	"github.com/theirongolddev/heartlines/internal/logging"
	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/store"
	"github.com/theirongolddev/heartlines/internal/tui/theme"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagDB       string
	flagAsOf     string
	flagMonths   int
	flagQuiet    bool
	flagLogLevel string
)

// Set up by the root PersistentPreRunE before any command runs.
var (
	appCfg = config.DefaultConfig()
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:               "heartlines",
	Short:             "Personal budgeting in the terminal",
	Long:              "Track income and expenses, and compare your spending against the 50/30/20 rule.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config or "+store.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Month to analyze, YYYY-MM (default current month)")
	rootCmd.PersistentFlags().IntVarP(&flagMonths, "months", "n", 0, "Months in trend views (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func loadRuntime(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithEnv()
	if err != nil {
		return err
	}
	appCfg = cfg
	theme.SetActive(cfg.Appearance.Theme)

	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagQuiet && flagLogLevel == "" {
		level = logrus.ErrorLevel.String()
	}
	logger = logging.New(logging.Options{Level: level, JSON: cfg.Log.JSON})
	return nil
}

func dbPath() string {
	switch {
	case flagDB != "":
		return flagDB
	case appCfg.General.DBPath != "":
		return appCfg.General.DBPath
	}
	return store.DefaultPath()
}

func trendMonths() int {
	if flagMonths > 0 {
		return flagMonths
	}
	if appCfg.General.TrendMonths > 0 {
		return appCfg.General.TrendMonths
	}
	return config.DefaultConfig().General.TrendMonths
}

// asOf returns the month being analyzed. Without --as-of it is now.
func asOf() (time.Time, error) {
	if flagAsOf == "" {
		return time.Now(), nil
	}
	return cli.ParseMonth(flagAsOf, time.Local)
}

func currency() string {
	return appCfg.General.CurrencySymbol
}

func money(v float64) string {
	return cli.FormatMoney(currency(), v)
}

// session is the shared open-load-save path used by all data commands.
type session struct {
	store  *store.Store
	ledger *ledger.Ledger
	asOf   time.Time
	data   model.FinancialData
}

// openSession opens the store for a read-only command. Unreadable state is
// logged and replaced by the empty default.
func openSession(ctx context.Context) (*session, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	s.data = store.LoadState(ctx, s.store, logger, s.asOf)
	return s, nil
}

// openSessionForWrite opens the store for a command that saves afterwards.
// A read error aborts, so a failed read is never saved over the ledger.
func openSessionForWrite(ctx context.Context) (*session, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	d, _, err := store.ReadState(ctx, s.store, s.asOf)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("reading budget from %s: %w", dbPath(), err)
	}
	s.data = d
	return s, nil
}

func openStore() (*session, error) {
	month, err := asOf()
	if err != nil {
		return nil, err
	}

	path := dbPath()
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Opening %s\n", path)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return &session{store: st, ledger: ledger.New(), asOf: month}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// save persists d and makes it the session's current data.
func (s *session) save(ctx context.Context, d model.FinancialData) error {
	if err := store.SaveState(ctx, s.store, d); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	s.data = d
	logger.WithFields(logrus.Fields{
		"incomes":  len(d.Incomes),
		"expenses": len(d.Expenses),
	}).Debug("state saved")
	return nil
}

func (s *session) empty() bool {
	return len(s.data.Incomes) == 0 && len(s.data.Expenses) == 0
}

func printEmpty() {
	fmt.Println("\n  No income or expenses recorded yet.")
	fmt.Println("  Add some with `heartlines income add` and `heartlines expense add`, or run `heartlines tui`.")
}
