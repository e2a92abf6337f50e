package sqlite

import (
	"database/sql"
	"time"

	"github.com/sundial-app/sundial/internal/domain"
)

// ─── Streak Key-Value ───────────────────────────────────────────────────────

// SetStreakValue stores a streak key-value pair.
func (d *DB) SetStreakValue(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO streaks (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetStreakValue retrieves a streak value by key.
// Returns "" if key not found.
func (d *DB) GetStreakValue(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM streaks WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Earned Achievements ────────────────────────────────────────────────────

// EarnAchievement records an achievement as earned.
// Returns false if already earned (at-most-once per ID).
func (d *DB) EarnAchievement(id string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO user_achievements (achievement_id, earned_at) VALUES (?, ?)`,
		id, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ListEarnedAchievements returns all earned achievements, newest first.
func (d *DB) ListEarnedAchievements() ([]domain.EarnedAchievement, error) {
	rows, err := d.db.Query(
		`SELECT achievement_id, earned_at FROM user_achievements ORDER BY earned_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earned []domain.EarnedAchievement
	for rows.Next() {
		var a domain.EarnedAchievement
		var at int64
		if err := rows.Scan(&a.ID, &at); err != nil {
			return nil, err
		}
		a.EarnedAt = time.Unix(at, 0)
		earned = append(earned, a)
	}
	return earned, rows.Err()
}

// EarnedAchievementSet returns the earned achievement IDs as a set.
func (d *DB) EarnedAchievementSet() (map[string]bool, error) {
	earned, err := d.ListEarnedAchievements()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(earned))
	for _, a := range earned {
		set[a.ID] = true
	}
	return set, nil
}

// ─── Earned Badges ──────────────────────────────────────────────────────────

// EarnBadge records a badge as earned.
// Returns false if already earned (at-most-once per ID).
func (d *DB) EarnBadge(id string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO user_badges (badge_id, earned_at) VALUES (?, ?)`,
		id, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ListEarnedBadges returns all earned badges, newest first.
func (d *DB) ListEarnedBadges() ([]domain.EarnedBadge, error) {
	rows, err := d.db.Query(
		`SELECT badge_id, earned_at FROM user_badges ORDER BY earned_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earned []domain.EarnedBadge
	for rows.Next() {
		var b domain.EarnedBadge
		var at int64
		if err := rows.Scan(&b.ID, &at); err != nil {
			return nil, err
		}
		b.EarnedAt = time.Unix(at, 0)
		earned = append(earned, b)
	}
	return earned, rows.Err()
}

// EarnedBadgeSet returns the earned badge IDs as a set.
func (d *DB) EarnedBadgeSet() (map[string]bool, error) {
	earned, err := d.ListEarnedBadges()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(earned))
	for _, b := range earned {
		set[b.ID] = true
	}
	return set, nil
}

// ─── Notifications ──────────────────────────────────────────────────────────

// InsertNotification creates a new notification.
func (d *DB) InsertNotification(n domain.Notification) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO notifications (type, title, message, read, created_at)
		 VALUES (?, ?, ?, 0, ?)`,
		string(n.Type), n.Title, n.Message, n.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// NotificationCountOnDay returns how many notifications were created on
// the same local calendar day as t.
func (d *DB) NotificationCountOnDay(t time.Time) (int, error) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)

	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ? AND created_at < ?`,
		start.Unix(), end.Unix(),
	).Scan(&count)
	return count, err
}

// NotificationCountOnDayByType returns how many notifications of one
// type were created on the same local calendar day as t.
func (d *DB) NotificationCountOnDayByType(t time.Time, typ domain.NotificationType) (int, error) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)

	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE type = ? AND created_at >= ? AND created_at < ?`,
		string(typ), start.Unix(), end.Unix(),
	).Scan(&count)
	return count, err
}

// ListNotifications returns notifications newest first.
// unreadOnly filters to unread; limit <= 0 means no limit.
func (d *DB) ListNotifications(unreadOnly bool, limit int) ([]domain.Notification, error) {
	q := `SELECT id, type, title, message, read, created_at FROM notifications`
	if unreadOnly {
		q += ` WHERE read = 0`
	}
	q += ` ORDER BY created_at DESC`

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

	var notifs []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var typ string
		var createdAt int64
		if err := rows.Scan(&n.ID, &typ, &n.Title, &n.Message, &n.Read, &createdAt); err != nil {
			return nil, err
		}
		n.Type = domain.NotificationType(typ)
		n.CreatedAt = time.Unix(createdAt, 0)
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

// MarkNotificationRead marks a notification as read.
func (d *DB) MarkNotificationRead(id int64) error {
	result, err := d.db.Exec(`UPDATE notifications SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// DeleteNotification removes a notification.
func (d *DB) DeleteNotification(id int64) error {
	result, err := d.db.Exec(`DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// UnreadNotificationCount returns the number of unread notifications.
func (d *DB) UnreadNotificationCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE read = 0`).Scan(&count)
	return count, err
}
