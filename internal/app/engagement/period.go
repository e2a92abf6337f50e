// Package engagement implements the Sundial streak and award engine:
// time-period classification, per-period streaks, the badge/achievement
// rule evaluator, and the notification dispatcher.
package engagement

import (
	"time"

	"github.com/sundial-app/sundial/internal/domain"
)

// Fixed local-time period boundaries.
const (
	morningStartHour   = 5  // 05:00
	afternoonStartHour = 12 // 12:00
	eveningStartHour   = 17 // 17:00
)

// ClassifyPeriod maps a timestamp to its daily check-in window.
// Evening wraps past midnight, so the function is total: every hour of
// the day belongs to exactly one period.
func ClassifyPeriod(t time.Time) domain.TimePeriod {
	hour := t.Hour()
	switch {
	case hour >= morningStartHour && hour < afternoonStartHour:
		return domain.Morning
	case hour >= afternoonStartHour && hour < eveningStartHour:
		return domain.Afternoon
	default:
		return domain.Evening
	}
}
