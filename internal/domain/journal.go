// Package domain holds the pure types of the Sundial check-in engine.
// No infrastructure imports — these types are shared by the app services,
// the SQLite layer, and the HTTP API.
package domain

import "time"

// ─── Time Periods ───────────────────────────────────────────────────────────

// TimePeriod is one of the three daily check-in windows.
type TimePeriod string

const (
	Morning   TimePeriod = "morning"   // [05:00, 12:00)
	Afternoon TimePeriod = "afternoon" // [12:00, 17:00)
	Evening   TimePeriod = "evening"   // [17:00, 05:00) — wraps midnight
)

// AllPeriods lists the periods in day order.
func AllPeriods() []TimePeriod {
	return []TimePeriod{Morning, Afternoon, Evening}
}

// Valid reports whether p is a known period.
func (p TimePeriod) Valid() bool {
	return p == Morning || p == Afternoon || p == Evening
}

// ─── Journal Entries ────────────────────────────────────────────────────────

// JournalEntry is one immutable record per completed check-in.
// EmotionalShift is a signed scalar in [-2, 2] capturing how much the
// user's mood changed during the check-in.
type JournalEntry struct {
	ID               string     `json:"id"`
	CreatedAt        time.Time  `json:"created_at"`
	Period           TimePeriod `json:"time_period"`
	InitialEmotion   string     `json:"initial_emotion"`
	SecondaryEmotion string     `json:"secondary_emotion,omitempty"`
	EmotionalShift   float64    `json:"emotional_shift"`
	Gratitude        string     `json:"gratitude"`
	Note             string     `json:"note,omitempty"`
}

// ─── Mood Scale ─────────────────────────────────────────────────────────────

// Mood labels map onto an ordinal 1–5 scale. Unknown labels score 0,
// which never qualifies for the mood-shift rule.
const (
	MoodTerrible = "terrible"
	MoodBad      = "bad"
	MoodOkay     = "okay"
	MoodGood     = "good"
	MoodGreat    = "great"
)

// MoodScore returns the ordinal value of a mood label (terrible=1 … great=5),
// or 0 for an unknown label.
func MoodScore(mood string) int {
	switch mood {
	case MoodTerrible:
		return 1
	case MoodBad:
		return 2
	case MoodOkay:
		return 3
	case MoodGood:
		return 4
	case MoodGreat:
		return 5
	default:
		return 0
	}
}
