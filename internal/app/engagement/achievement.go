package engagement

import "github.com/sundial-app/sundial/internal/domain"

// ─── Achievement Catalog ────────────────────────────────────────────────────
// Static reference data. Streak-gated achievements are evaluated in
// ascending RequiresStreak order by the rule evaluator.

// FirstCheckInAchievementID is granted by the first-check-in rule group.
const FirstCheckInAchievementID = "first_check_in"

// AllAchievements returns the full achievement catalog.
func AllAchievements() []domain.AchievementDef {
	return []domain.AchievementDef{
		{
			ID: FirstCheckInAchievementID, Name: "First Light",
			Description: "Completed your very first check-in.",
			Points:      10, IconName: "sunrise",
		},
		{
			ID: "streak_3", Name: "Three in a Row",
			Description: "Checked in three days running.",
			Points:      15, IconName: "flame", RequiresStreak: 3,
		},
		{
			ID: "streak_7", Name: "Week of Sunrises",
			Description: "A full week of daily check-ins.",
			Points:      25, IconName: "calendar-week", RequiresStreak: 7,
		},
		{
			ID: "streak_14", Name: "Steady Fortnight",
			Description: "Fourteen consecutive days.",
			Points:      40, IconName: "calendar-range", RequiresStreak: 14,
		},
		{
			ID: "streak_30", Name: "Monthly Ritual",
			Description: "Thirty days without missing a beat.",
			Points:      75, IconName: "moon", RequiresStreak: 30,
		},
		{
			ID: "streak_60", Name: "Two-Month Tide",
			Description: "Sixty consecutive days of presence.",
			Points:      120, IconName: "waves", RequiresStreak: 60,
		},
		{
			ID: "streak_100", Name: "Century Calm",
			Description: "One hundred days in a row.",
			Points:      200, IconName: "mountain", RequiresStreak: 100,
		},
		{
			ID: "streak_365", Name: "Year of Presence",
			Description: "A whole year, every single day.",
			Points:      500, IconName: "star", RequiresStreak: 365,
		},
	}
}
