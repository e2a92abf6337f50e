package engagement

import "github.com/sundial-app/sundial/internal/domain"

// ─── Badge Catalog ──────────────────────────────────────────────────────────
// Badges are grouped by category; the category decides which rule group
// evaluates them. Threshold-less badges are granted by dedicated rules.

// Badge IDs referenced directly by rule groups.
const (
	FirstCheckInBadgeID = "first-check-in"
	AllPeriodsBadgeID   = "full-circle"
	MoodLiftBadgeID     = "silver-lining"
)

// AllBadges returns the full badge catalog.
func AllBadges() []domain.BadgeDef {
	return []domain.BadgeDef{
		// ── Milestones ─────────────────────────────────────────────────
		{
			ID: FirstCheckInBadgeID, Name: "First Step",
			Description: "You showed up. That counts.",
			Category:    domain.CatMilestone, IconName: "footprints",
		},

		// ── Consistency ────────────────────────────────────────────────
		{
			ID: AllPeriodsBadgeID, Name: "Full Circle",
			Description: "Morning, afternoon and evening — all in one day.",
			Category:    domain.CatConsistency, IconName: "circle-check",
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak-week", Name: "Seven Suns",
			Description: "A seven-day check-in streak.",
			Category:    domain.CatStreak, IconName: "flame", Threshold: 7,
		},
		{
			ID: "streak-month", Name: "Lunar Loop",
			Description: "A thirty-day check-in streak.",
			Category:    domain.CatStreak, IconName: "moon", Threshold: 30,
		},

		// ── Mood Patterns ──────────────────────────────────────────────
		{
			ID: "familiar-feeling", Name: "Familiar Feeling",
			Description: "Logged the same emotion five times.",
			Category:    domain.CatMoodPattern, IconName: "repeat", Threshold: 5,
		},
		{
			ID: "emotional-anchor", Name: "Emotional Anchor",
			Description: "Logged the same emotion fifteen times.",
			Category:    domain.CatMoodPattern, IconName: "anchor", Threshold: 15,
		},
		{
			ID: MoodLiftBadgeID, Name: "Silver Lining",
			Description: "Your mood lifted two steps in one check-in.",
			Category:    domain.CatMoodPattern, IconName: "trending-up",
		},

		// ── Journal Frequency ──────────────────────────────────────────
		{
			ID: "journal-10", Name: "Ten Pages",
			Description: "Ten journal entries recorded.",
			Category:    domain.CatJournalFrequency, IconName: "book", Threshold: 10,
		},
		{
			ID: "journal-50", Name: "Fifty Pages",
			Description: "Fifty journal entries recorded.",
			Category:    domain.CatJournalFrequency, IconName: "book-open", Threshold: 50,
		},
		{
			ID: "journal-100", Name: "Hundred Pages",
			Description: "One hundred journal entries recorded.",
			Category:    domain.CatJournalFrequency, IconName: "library", Threshold: 100,
		},
	}
}
