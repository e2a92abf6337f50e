package daemon

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7460 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7460)
	}
	if cfg.Notifications.MaxPerDay != 5 {
		t.Errorf("Notifications.MaxPerDay = %d, want 5", cfg.Notifications.MaxPerDay)
	}
	if cfg.Reminders.Cron != "0 20 * * *" {
		t.Errorf("Reminders.Cron = %q, want %q", cfg.Reminders.Cron, "0 20 * * *")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestNotificationsConfig_Policy(t *testing.T) {
	cfg := NotificationsConfig{MaxPerDay: 3, QuietStart: "21:00", QuietEnd: "07:30"}
	p := cfg.Policy()
	if p.MaxPerDay != 3 || p.QuietStart != "21:00" || p.QuietEnd != "07:30" {
		t.Errorf("Policy() = %+v", p)
	}
}

func TestSaveLoadConfig(t *testing.T) {
	t.Setenv("SUNDIAL_HOME", t.TempDir())

	// No file yet: defaults.
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load without file: %v", err)
	}
	if cfg.API.Port != 7460 {
		t.Errorf("default port = %d, want 7460", cfg.API.Port)
	}

	cfg.API.Port = 9999
	cfg.Reminders.Enabled = false
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.API.Port != 9999 {
		t.Errorf("reloaded port = %d, want 9999", loaded.API.Port)
	}
	if loaded.Reminders.Enabled {
		t.Error("reloaded Reminders.Enabled = true, want false")
	}
}

func TestSundialHome_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SUNDIAL_HOME", dir)
	if got := sundialHome(); got != dir {
		t.Errorf("sundialHome() = %q, want %q", got, dir)
	}
	if got := SundialHome(); got != filepath.Clean(dir) {
		t.Errorf("SundialHome() = %q, want %q", got, dir)
	}
}
