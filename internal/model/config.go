package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GatewayConfig holds connection settings for the persistence gateway.
type GatewayConfig struct {
	// BaseURL is the root URL of the gateway service.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// RoutePrefix is the path segment the serverless function layer is
	// mounted under (e.g. "make-server-c9339a2a").
	RoutePrefix string `mapstructure:"route_prefix" yaml:"route_prefix"`
}

// TimerConfig holds focus/break interval lengths.
type TimerConfig struct {
	FocusMinutes int `mapstructure:"focus_minutes" yaml:"focus_minutes"`
	BreakMinutes int `mapstructure:"break_minutes" yaml:"break_minutes"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// UserID is the identity all store operations are scoped to. With no
	// identity established, gateway-backed operations silently no-op.
	UserID string `mapstructure:"user_id" yaml:"user_id"`

	// SnapshotPath is the local SQLite file mutation snapshots are
	// written to.
	SnapshotPath string `mapstructure:"snapshot_path" yaml:"snapshot_path"`

	// RemindSchedule is the cron expression driving the reminder report.
	RemindSchedule string `mapstructure:"remind_schedule" yaml:"remind_schedule"`

	Gateway GatewayConfig `mapstructure:"gateway" yaml:"gateway"`
	Timer   TimerConfig   `mapstructure:"timer" yaml:"timer"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/chrono/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "chrono", "config.yaml")
}

// DefaultSnapshotPath returns the default local snapshot database path.
func DefaultSnapshotPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "chrono.db")
	}
	return filepath.Join(home, ".config", "chrono", "chrono.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		SnapshotPath:   DefaultSnapshotPath(),
		RemindSchedule: "0 9 * * *",
		Gateway: GatewayConfig{
			RoutePrefix: "chrono",
		},
		Timer: TimerConfig{
			FocusMinutes: 25,
			BreakMinutes: 5,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("snapshot_path", DefaultSnapshotPath())
	v.SetDefault("remind_schedule", "0 9 * * *")
	v.SetDefault("gateway.route_prefix", "chrono")
	v.SetDefault("timer.focus_minutes", 25)
	v.SetDefault("timer.break_minutes", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Timer.FocusMinutes <= 0 {
		cfg.Timer.FocusMinutes = 25
	}
	if cfg.Timer.BreakMinutes <= 0 {
		cfg.Timer.BreakMinutes = 5
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("user_id", cfg.UserID)
	v.Set("snapshot_path", cfg.SnapshotPath)
	v.Set("remind_schedule", cfg.RemindSchedule)
	v.Set("gateway", cfg.Gateway)
	v.Set("timer", cfg.Timer)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
