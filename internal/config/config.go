// Package config loads and saves the heartlines TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDB          = "HEARTLINES_DB"
	EnvLogLevel    = "HEARTLINES_LOG_LEVEL"
	EnvTheme       = "HEARTLINES_THEME"
	EnvTrendMonths = "HEARTLINES_TREND_MONTHS"
)

// Config holds all heartlines configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath         string `toml:"db_path,omitempty"`
	TrendMonths    int    `toml:"trend_months"`
	CurrencySymbol string `toml:"currency_symbol"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds settings for the background status server.
type DaemonConfig struct {
	Addr         string `toml:"addr"`
	IntervalSec  int    `toml:"interval_sec"`
	EventsBuffer int    `toml:"events_buffer"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			TrendMonths:    6,
			CurrencySymbol: "$",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8787",
			IntervalSec:  15,
			EventsBuffer: 200,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "heartlines")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "heartlines")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// EnvPath returns the optional dotenv file read by LoadWithEnv.
func EnvPath() string {
	return filepath.Join(ConfigDir(), ".env")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv reads the config file and applies environment overrides. A
// .env file next to the config is loaded first; variables already set in the
// process environment win over it.
func LoadWithEnv() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return cfg, err
	}
	if _, statErr := os.Stat(EnvPath()); statErr == nil {
		if err := godotenv.Load(EnvPath()); err != nil {
			return cfg, fmt.Errorf("reading %s: %w", EnvPath(), err)
		}
	}
	return ApplyEnv(cfg), nil
}

// ApplyEnv returns cfg with HEARTLINES_* environment overrides applied.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv(EnvTrendMonths); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.TrendMonths = n
		}
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path with owner-only permissions.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
