package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/theirongolddev/heartlines/internal/daemon"
	"github.com/theirongolddev/heartlines/internal/model"
	"github.com/theirongolddev/heartlines/internal/store"

	"github.com/spf13/cobra"
)

// daemonRuntimeState is written next to the pid file so `daemon status`
// can find the API of a daemon started with different flags.
type daemonRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DBPath    string    `json:"db_path"`
}

const daemonStopTimeout = 8 * time.Second

var (
	flagDaemonAddr         string
	flagDaemonInterval     time.Duration
	flagDaemonEventsBuffer int
	flagDaemonPIDFile      string
	flagDaemonLogFile      string
	flagDaemonDetach       bool
	flagDaemonChild        bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Serve budget status over HTTP and watch for changes",
	Long: "Run a local read-only HTTP API that re-reads the budget every interval and " +
		"publishes an event whenever the monthly figures change.",
	RunE: runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and API status",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	pf := daemonCmd.PersistentFlags()
	pf.StringVar(&flagDaemonAddr, "addr", "", "HTTP listen address (default from config)")
	pf.DurationVar(&flagDaemonInterval, "interval", 0, "Polling interval (default from config)")
	pf.IntVar(&flagDaemonEventsBuffer, "events-buffer", 0, "Max in-memory events retained (default from config)")
	pf.StringVar(&flagDaemonPIDFile, "pid-file", filepath.Join(store.DataDir(), "heartlinesd.pid"), "PID file path")
	pf.StringVar(&flagDaemonLogFile, "log-file", filepath.Join(store.DataDir(), "heartlinesd.log"), "Log file for detached mode")

	daemonCmd.Flags().BoolVar(&flagDaemonDetach, "detach", false, "Run daemon as a background process")
	daemonCmd.Flags().BoolVar(&flagDaemonChild, "child", false, "Internal: mark detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd, daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

// daemonSettings merges daemon flags over the [daemon] config section.
func daemonSettings() (addr string, interval time.Duration, events int) {
	addr = appCfg.Daemon.Addr
	if flagDaemonAddr != "" {
		addr = flagDaemonAddr
	}
	interval = time.Duration(appCfg.Daemon.IntervalSec) * time.Second
	if flagDaemonInterval > 0 {
		interval = flagDaemonInterval
	}
	events = appCfg.Daemon.EventsBuffer
	if flagDaemonEventsBuffer > 0 {
		events = flagDaemonEventsBuffer
	}
	return addr, interval, events
}

func runDaemon(_ *cobra.Command, _ []string) error {
	pf := pidFile(flagDaemonPIDFile)
	if err := pf.ensureNotRunning(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(string(pf)), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}

	switch {
	case flagDaemonDetach && flagDaemonChild:
		return errors.New("invalid daemon launch mode")
	case flagDaemonDetach:
		return spawnDetached(pf)
	}
	return serveDaemon(pf)
}

// spawnDetached re-executes the current command line without --detach, with
// output going to the daemon log file.
func spawnDetached(pf pidFile) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagDaemonLogFile), 0o750); err != nil {
		return fmt.Errorf("create daemon log directory: %w", err)
	}
	logf, err := os.OpenFile(flagDaemonLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // log path is chosen by the local user
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, append(filterDetachArg(os.Args[1:]), "--child")...) //nolint:gosec // re-runs this binary with its own args
	child.Stdout, child.Stderr = logf, logf
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	addr, _, _ := daemonSettings()
	fmt.Printf("  Started daemon (pid %d)\n", child.Process.Pid)
	fmt.Printf("  PID file: %s\n", pf)
	fmt.Printf("  API: http://%s/v1/status\n", addr)
	fmt.Printf("  Log: %s\n", flagDaemonLogFile)
	return nil
}

// serveDaemon runs the service in the foreground until SIGINT or SIGTERM.
func serveDaemon(pf pidFile) error {
	if err := pf.write(os.Getpid()); err != nil {
		return err
	}
	defer pf.remove()

	addr, interval, events := daemonSettings()
	path := dbPath()
	_ = pf.writeState(daemonRuntimeState{
		PID:       os.Getpid(),
		Addr:      addr,
		StartedAt: time.Now(),
		DBPath:    path,
	})

	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	svc := daemon.New(daemon.Config{
		DBPath:       path,
		Interval:     interval,
		Addr:         addr,
		EventsBuffer: events,
		TrendMonths:  trendMonths(),
	}, storeLoader(st), logger)

	fmt.Printf("  heartlines daemon listening on http://%s\n", addr)
	fmt.Printf("  Watching %s every %s\n", path, interval)
	fmt.Printf("  Stop with: heartlines daemon stop --pid-file %s\n", pf)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// storeLoader reads the saved state on every poll so edits made by other
// heartlines processes show up.
func storeLoader(kv store.KV) daemon.Loader {
	return func(ctx context.Context, asOf time.Time) (model.FinancialData, error) {
		d, _, err := store.ReadState(ctx, kv, asOf)
		return d, err
	}
}

func runDaemonStatus(cmd *cobra.Command, _ []string) error {
	pf := pidFile(flagDaemonPIDFile)
	pid, err := pf.read()
	if err != nil {
		fmt.Println("  Daemon: not running (pid file not found)")
		return nil
	}
	if !processAlive(pid) {
		fmt.Printf("  Daemon: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr, _, _ := daemonSettings()
	if rs, err := pf.readState(); err == nil && rs.Addr != "" {
		addr = rs.Addr
	}
	fmt.Printf("  Daemon PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()
	st, err := fetchDaemonStatus(ctx, addr)
	if err != nil {
		fmt.Printf("  API status: %v\n", err)
		return nil
	}
	printDaemonStatus(st)
	return nil
}

func fetchDaemonStatus(ctx context.Context, addr string) (daemon.Status, error) {
	var st daemon.Status
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/status", nil)
	if err != nil {
		return st, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return st, fmt.Errorf("unreachable (%w)", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("malformed response (%w)", err)
	}
	return st, nil
}

func printDaemonStatus(st daemon.Status) {
	lastPoll := "pending"
	if !st.LastPollAt.IsZero() {
		lastPoll = st.LastPollAt.Local().Format(time.RFC3339)
	}
	sum := st.Summary

	fmt.Printf("  Last poll: %s (%d polls)\n", lastPoll, st.PollCount)
	fmt.Printf("  Database: %s\n", st.DBPath)
	fmt.Printf("  Month: %s\n", sum.Month)
	fmt.Printf("  Records: %d incomes, %d expenses\n", sum.Incomes, sum.Expenses)
	fmt.Printf("  Income: %s  Spent: %s  Net: %s\n", money(sum.TotalIncome), money(sum.TotalExpenses), money(sum.NetIncome))
	fmt.Printf("  Over budget: %d categories\n", sum.OverBudget)
	fmt.Printf("  Subscribers: %d  Events: %d\n", st.SubscriberCount, st.EventCount)
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	pf := pidFile(flagDaemonPIDFile)
	pid, err := pf.read()
	if err != nil {
		return errors.New("daemon is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal daemon process: %w", err)
	}

	tick := time.NewTicker(150 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(daemonStopTimeout)
	for {
		select {
		case <-deadline:
			return fmt.Errorf("daemon (pid %d) did not exit within %s", pid, daemonStopTimeout)
		case <-tick.C:
			if !processAlive(pid) {
				pf.remove()
				fmt.Printf("  Stopped daemon (pid %d)\n", pid)
				return nil
			}
		}
	}
}
