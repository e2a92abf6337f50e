// Package daemon manages the Sundial daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/sundial-app/sundial/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	API           APIConfig           `toml:"api"`
	Notifications NotificationsConfig `toml:"notifications"`
	Reminders     RemindersConfig     `toml:"reminders"`
	Logging       LoggingConfig       `toml:"logging"`
	Telemetry     TelemetryConfig     `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// NotificationsConfig controls the award-notification policy.
type NotificationsConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// Policy converts the config section into the domain policy.
func (c NotificationsConfig) Policy() domain.NotificationPolicy {
	return domain.NotificationPolicy{
		MaxPerDay:  c.MaxPerDay,
		QuietStart: c.QuietStart,
		QuietEnd:   c.QuietEnd,
	}
}

// RemindersConfig controls the daily check-in reminder.
type RemindersConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"` // 5-field cron spec
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

// TelemetryConfig controls the Prometheus endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	home := sundialHome()
	policy := domain.DefaultNotificationPolicy()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7460,
		},
		Notifications: NotificationsConfig{
			MaxPerDay:  policy.MaxPerDay,
			QuietStart: policy.QuietStart,
			QuietEnd:   policy.QuietEnd,
		},
		Reminders: RemindersConfig{
			Enabled: true,
			Cron:    "0 20 * * *", // 20:00 daily
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      filepath.Join(home, "sundial.log"),
			MaxSizeMB: 50,
			MaxFiles:  5,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
	}
}

// LoadConfig reads config from ~/.sundial/config.toml, falling back to
// defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(sundialHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.sundial/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(sundialHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// sundialHome returns the Sundial data directory.
func sundialHome() string {
	if env := os.Getenv("SUNDIAL_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sundial")
}

// SundialHome is exported for use by other packages.
func SundialHome() string {
	return sundialHome()
}
