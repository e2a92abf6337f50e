package sqlite

import (
	"database/sql"
	"time"

	"github.com/sundial-app/sundial/internal/domain"
)

// ─── Journal Entries ────────────────────────────────────────────────────────

// InsertEntry persists a new journal entry.
func (d *DB) InsertEntry(e domain.JournalEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO journal_entries (id, created_at, time_period, initial_emotion, secondary_emotion, emotional_shift, gratitude, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.Unix(), string(e.Period), e.InitialEmotion,
		e.SecondaryEmotion, e.EmotionalShift, e.Gratitude, e.Note,
	)
	return err
}

// GetEntry retrieves a single entry by ID. Returns nil if not found.
func (d *DB) GetEntry(id string) (*domain.JournalEntry, error) {
	row := d.db.QueryRow(
		`SELECT id, created_at, time_period, initial_emotion, secondary_emotion, emotional_shift, gratitude, note
		 FROM journal_entries WHERE id = ?`, id,
	)
	return scanEntry(row)
}

// ListEntries returns entries newest first. limit <= 0 means no limit.
func (d *DB) ListEntries(limit int) ([]domain.JournalEntry, error) {
	q := `SELECT id, created_at, time_period, initial_emotion, secondary_emotion, emotional_shift, gratitude, note
	      FROM journal_entries ORDER BY created_at DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = d.db.Query(q+` LIMIT ?`, limit)
	} else {
		rows, err = d.db.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// CountEntries returns the total number of journal entries.
func (d *DB) CountEntries() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM journal_entries`).Scan(&count)
	return count, err
}

// EntryDatesByPeriod returns the check-in timestamps recorded for one
// period, newest first. Feeds the streak calculator.
func (d *DB) EntryDatesByPeriod(period domain.TimePeriod) ([]time.Time, error) {
	rows, err := d.db.Query(
		`SELECT created_at FROM journal_entries WHERE time_period = ? ORDER BY created_at DESC`,
		string(period),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		dates = append(dates, time.Unix(ts, 0))
	}
	return dates, rows.Err()
}

// EntriesOnDay returns all entries whose timestamp falls on the same
// local calendar day as t.
func (d *DB) EntriesOnDay(t time.Time) ([]domain.JournalEntry, error) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)

	rows, err := d.db.Query(
		`SELECT id, created_at, time_period, initial_emotion, secondary_emotion, emotional_shift, gratitude, note
		 FROM journal_entries WHERE created_at >= ? AND created_at < ? ORDER BY created_at`,
		start.Unix(), end.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanEntry(s scanner) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var createdAt int64
	var period string

	err := s.Scan(&e.ID, &createdAt, &period, &e.InitialEmotion,
		&e.SecondaryEmotion, &e.EmotionalShift, &e.Gratitude, &e.Note)
	if err == sql.ErrNoRows {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	e.CreatedAt = time.Unix(createdAt, 0)
	e.Period = domain.TimePeriod(period)
	return &e, nil
}
