// Package domain — engagement types.
// Streaks, badges, achievements, and the notifications they produce.
package domain

import "time"

// ─── Streak Types ───────────────────────────────────────────────────────────

// CheckInStreak tracks consecutive-day counts per daily period.
// Invariant: a period's counter is 0 if and only if its last-check-in
// timestamp is nil.
type CheckInStreak struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`

	LastMorningCheckIn   *time.Time `json:"last_morning_check_in"`
	LastAfternoonCheckIn *time.Time `json:"last_afternoon_check_in"`
	LastEveningCheckIn   *time.Time `json:"last_evening_check_in"`
}

// ActivePeriods returns how many periods have a non-zero counter.
func (s CheckInStreak) ActivePeriods() int {
	n := 0
	if s.Morning > 0 {
		n++
	}
	if s.Afternoon > 0 {
		n++
	}
	if s.Evening > 0 {
		n++
	}
	return n
}

// HasAnyCheckIn reports whether any period carries a last-check-in timestamp.
func (s CheckInStreak) HasAnyCheckIn() bool {
	return s.LastMorningCheckIn != nil || s.LastAfternoonCheckIn != nil || s.LastEveningCheckIn != nil
}

// MaxCount returns the largest of the three period counters.
func (s CheckInStreak) MaxCount() int {
	m := s.Morning
	if s.Afternoon > m {
		m = s.Afternoon
	}
	if s.Evening > m {
		m = s.Evening
	}
	return m
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementDef is a catalog entry. RequiresStreak is the consecutive-day
// threshold that gates it; 0 means the achievement is granted by a
// non-streak rule (e.g. the first check-in).
type AchievementDef struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Points         int    `json:"points"`
	IconName       string `json:"icon_name"`
	RequiresStreak int    `json:"requires_streak,omitempty"`
}

// EarnedAchievement records when an achievement was granted.
// At most one exists per achievement ID.
type EarnedAchievement struct {
	ID       string    `json:"id"`
	EarnedAt time.Time `json:"earned_at"`
}

// ─── Badge Types ────────────────────────────────────────────────────────────

// BadgeCategory is a closed set — rule-group dispatch switches on it
// exhaustively.
type BadgeCategory string

const (
	CatMilestone        BadgeCategory = "milestone"
	CatConsistency      BadgeCategory = "consistency"
	CatStreak           BadgeCategory = "streak"
	CatMoodPattern      BadgeCategory = "mood-pattern"
	CatJournalFrequency BadgeCategory = "journal-frequency"
)

// BadgeDef is a catalog entry. The meaning of Threshold depends on the
// category: streak → consecutive days, mood-pattern → occurrences of one
// emotion, journal-frequency → total entries. 0 means the badge is granted
// by a dedicated rule (first check-in, all periods, mood shift).
type BadgeDef struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    BadgeCategory `json:"category"`
	IconName    string        `json:"icon_name"`
	Threshold   int           `json:"threshold,omitempty"`
}

// EarnedBadge records when a badge was granted.
type EarnedBadge struct {
	ID       string    `json:"id"`
	EarnedAt time.Time `json:"earned_at"`
}

// ─── Award Events ───────────────────────────────────────────────────────────

// AwardKind distinguishes the two reward tables.
type AwardKind string

const (
	AwardAchievement AwardKind = "achievement"
	AwardBadge       AwardKind = "badge"
)

// AwardEvent is emitted by the rule evaluator for each newly-qualifying
// reward. Notify controls whether the dispatcher surfaces it to the user;
// rewards are persisted either way.
type AwardEvent struct {
	Kind   AwardKind `json:"kind"`
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Points int       `json:"points,omitempty"`
	Notify bool      `json:"notify"`
}

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes notifications.
type NotificationType string

const (
	NotifyAchievement NotificationType = "achievement"
	NotifyBadge       NotificationType = "badge"
	NotifyStreak      NotificationType = "streak"
	NotifyReminder    NotificationType = "reminder"
)

// Notification is a user-facing message, surfaced over the API and
// mutated (marked read) or deleted by the user.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationPolicy governs how often award notifications are created.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy caps award toasts at 5/day outside quiet hours.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  5,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}
