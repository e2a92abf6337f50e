package engagement

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sundial-app/sundial/internal/domain"
	"github.com/sundial-app/sundial/internal/infra/metrics"
	"github.com/sundial-app/sundial/internal/infra/sqlite"
)

// Notifier turns award events into persisted notifications, subject to a
// policy: a daily cap plus quiet hours. Suppressed notifications are not
// an error — the award itself is already persisted by then.
type Notifier struct {
	db     *sqlite.DB
	policy domain.NotificationPolicy
	log    *zap.Logger
}

// NewNotifier creates a notifier with the default policy.
func NewNotifier(db *sqlite.DB, log *zap.Logger) *Notifier {
	return NewNotifierWithPolicy(db, domain.DefaultNotificationPolicy(), log)
}

// NewNotifierWithPolicy creates a notifier with a custom policy.
func NewNotifierWithPolicy(db *sqlite.DB, policy domain.NotificationPolicy, log *zap.Logger) *Notifier {
	return &Notifier{db: db, policy: policy, log: log}
}

// Policy returns the active notification policy.
func (n *Notifier) Policy() domain.NotificationPolicy { return n.policy }

// DispatchAwards creates one notification per notify-flagged event and
// returns the IDs of the notifications actually created. Events with
// Notify=false and policy-suppressed events are skipped silently.
func (n *Notifier) DispatchAwards(events []domain.AwardEvent, at time.Time) ([]int64, error) {
	var ids []int64
	for _, ev := range events {
		if !ev.Notify {
			continue
		}
		id, err := n.Create(awardNotification(ev, at))
		if err != nil {
			return ids, fmt.Errorf("dispatch %s %s: %w", ev.Kind, ev.ID, err)
		}
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Create persists a notification if the policy allows it.
// Returns 0 (and no error) when suppressed.
func (n *Notifier) Create(notif domain.Notification) (int64, error) {
	todayCount, err := n.db.NotificationCountOnDay(notif.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if todayCount >= n.policy.MaxPerDay {
		metrics.NotificationsSuppressed.WithLabelValues("daily_limit").Inc()
		n.log.Debug("notification suppressed", zap.String("reason", "daily_limit"), zap.String("title", notif.Title))
		return 0, nil
	}

	if n.isQuietHour(notif.CreatedAt) {
		metrics.NotificationsSuppressed.WithLabelValues("quiet_hours").Inc()
		n.log.Debug("notification suppressed", zap.String("reason", "quiet_hours"), zap.String("title", notif.Title))
		return 0, nil
	}

	id, err := n.db.InsertNotification(notif)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	metrics.NotificationsSent.WithLabelValues(string(notif.Type)).Inc()
	return id, nil
}

// List returns notifications, newest first. unreadOnly filters to unread.
func (n *Notifier) List(unreadOnly bool, limit int) ([]domain.Notification, error) {
	return n.db.ListNotifications(unreadOnly, limit)
}

// MarkRead marks a notification as read.
func (n *Notifier) MarkRead(id int64) error {
	return n.db.MarkNotificationRead(id)
}

// Delete removes a notification.
func (n *Notifier) Delete(id int64) error {
	return n.db.DeleteNotification(id)
}

// UnreadCount returns the number of unread notifications.
func (n *Notifier) UnreadCount() (int, error) {
	return n.db.UnreadNotificationCount()
}

// isQuietHour returns true if t falls inside the policy's quiet window.
func (n *Notifier) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(n.policy.QuietStart)
	endHour, endMin := parseHHMM(n.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g. 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}

// awardNotification renders an award event as a user-facing notification.
func awardNotification(ev domain.AwardEvent, at time.Time) domain.Notification {
	switch ev.Kind {
	case domain.AwardAchievement:
		return domain.Notification{
			Type:      domain.NotifyAchievement,
			Title:     "Achievement earned!",
			Message:   fmt.Sprintf("%s — %d points", ev.Name, ev.Points),
			CreatedAt: at,
		}
	default:
		return domain.Notification{
			Type:      domain.NotifyBadge,
			Title:     "New badge!",
			Message:   ev.Name,
			CreatedAt: at,
		}
	}
}
