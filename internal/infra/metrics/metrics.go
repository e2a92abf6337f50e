// Package metrics provides Prometheus metrics for Sundial — counters and
// gauges for check-ins, streaks, awards, and notifications.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Check-Ins ──────────────────────────────────────────────────────────────

// CheckIns tracks completed check-ins by period.
var CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sundial",
	Name:      "checkins_total",
	Help:      "Total completed check-ins by time period.",
}, []string{"period"})

// CheckInFailures tracks check-in submissions that failed to persist.
var CheckInFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sundial",
	Name:      "checkin_failures_total",
	Help:      "Total check-in submissions rejected or failed.",
})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakDays tracks the current consecutive-day count per period.
var StreakDays = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "sundial",
	Name:      "streak_days",
	Help:      "Current consecutive-day streak per period.",
}, []string{"period"})

// OverallStreak tracks the merged display streak.
var OverallStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "sundial",
	Name:      "streak_overall_days",
	Help:      "Current overall streak shown to the user.",
})

// ─── Awards ─────────────────────────────────────────────────────────────────

// AwardsGranted tracks newly granted rewards by kind.
var AwardsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sundial",
	Name:      "awards_granted_total",
	Help:      "Total badges and achievements granted.",
}, []string{"kind"})

// RuleGroupFailures tracks rule groups that panicked during evaluation.
var RuleGroupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sundial",
	Name:      "rule_group_failures_total",
	Help:      "Total rule-group evaluation failures (isolated, non-fatal).",
}, []string{"group"})

// ─── Notifications ──────────────────────────────────────────────────────────

// NotificationsSent tracks notifications actually created, by type.
var NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sundial",
	Name:      "notifications_sent_total",
	Help:      "Total notifications created.",
}, []string{"type"})

// NotificationsSuppressed tracks notifications dropped by policy.
var NotificationsSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sundial",
	Name:      "notifications_suppressed_total",
	Help:      "Total notifications suppressed by policy.",
}, []string{"reason"})

// RemindersSent tracks reminder notifications created by the scheduler.
var RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "sundial",
	Name:      "reminders_sent_total",
	Help:      "Total reminder notifications created.",
})
