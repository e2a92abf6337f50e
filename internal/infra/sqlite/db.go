// Package sqlite provides SQLite-based persistent storage for Sundial.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/journal.db.
// Enables WAL mode, foreign keys, and a 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "journal.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// One row per completed check-in. Entries are immutable.
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id                TEXT PRIMARY KEY,
			created_at        INTEGER NOT NULL,
			time_period       TEXT NOT NULL,
			initial_emotion   TEXT NOT NULL,
			secondary_emotion TEXT NOT NULL DEFAULT '',
			emotional_shift   REAL NOT NULL DEFAULT 0,
			gratitude         TEXT NOT NULL,
			note              TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_created ON journal_entries(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_period ON journal_entries(time_period)`,

		// Key-value store for streak state (per-period counters + stamps)
		`CREATE TABLE IF NOT EXISTS streaks (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Earned rewards. Catalogs live in code; only join rows persist.
		`CREATE TABLE IF NOT EXISTS user_achievements (
			achievement_id TEXT PRIMARY KEY,
			earned_at      INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_badges (
			badge_id  TEXT PRIMARY KEY,
			earned_at INTEGER NOT NULL
		)`,

		// Notification log (policy: daily cap, quiet hours)
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			message    TEXT NOT NULL,
			read       BOOLEAN DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_created ON notifications(created_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
