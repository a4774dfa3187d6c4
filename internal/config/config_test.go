package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.General.TrendMonths != 6 || cfg.General.CurrencySymbol != "$" {
		t.Fatalf("defaults = %+v", cfg.General)
	}
	if cfg.Daemon.IntervalSec != 15 || cfg.Daemon.EventsBuffer != 200 {
		t.Fatalf("daemon defaults = %+v", cfg.Daemon)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartlines", "config.toml")
	cfg := DefaultConfig()
	cfg.General.DBPath = "/tmp/budget.db"
	cfg.General.CurrencySymbol = "€"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Log.JSON = true

	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600", perm)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadFileRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\ntrend_months = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDB, "/data/h.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvTheme, "terminal")
	t.Setenv(EnvTrendMonths, "12")

	cfg := ApplyEnv(DefaultConfig())
	if cfg.General.DBPath != "/data/h.db" || cfg.Log.Level != "debug" || cfg.Appearance.Theme != "terminal" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.General.TrendMonths != 12 {
		t.Fatalf("TrendMonths = %d, want 12", cfg.General.TrendMonths)
	}

	t.Setenv(EnvTrendMonths, "-1")
	if got := ApplyEnv(DefaultConfig()).General.TrendMonths; got != 6 {
		t.Fatalf("invalid trend months applied: %d", got)
	}
}

func TestLoadWithEnvReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvTheme, "")
	if err := os.MkdirAll(filepath.Join(dir, "heartlines"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "heartlines", ".env"), []byte("HEARTLINES_DB=/from/dotenv.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Registers restoration, then clears the variable so .env can supply it.
	t.Setenv(EnvDB, "")
	_ = os.Unsetenv(EnvDB)

	cfg, err := LoadWithEnv()
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if cfg.General.DBPath != "/from/dotenv.db" {
		t.Fatalf("DBPath = %q, want value from .env", cfg.General.DBPath)
	}
}
