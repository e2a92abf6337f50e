package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Check-in errors
	ErrEmptyGratitude   = errors.New("gratitude note is required")
	ErrMissingEmotion   = errors.New("initial emotion is required")
	ErrEntryNotFound    = errors.New("journal entry not found")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Insight errors
	ErrNoEntries      = errors.New("no journal entries recorded yet")
	ErrInvalidWindow  = errors.New("rolling window must be at least 1 day")
	ErrInvalidMonth   = errors.New("month must be between 1 and 12")
)
