// Package reminder schedules the daily check-in reminder: a cron job
// that nudges the user about periods they haven't checked in yet today.
package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sundial-app/sundial/internal/domain"
	"github.com/sundial-app/sundial/internal/infra/metrics"
	"github.com/sundial-app/sundial/internal/infra/sqlite"
)

// Scheduler runs the reminder job on a cron spec.
type Scheduler struct {
	db   *sqlite.DB
	spec string
	cron *cron.Cron
	log  *zap.Logger
}

// New creates a reminder scheduler. spec is a standard 5-field cron
// expression, e.g. "0 20 * * *" for 20:00 daily.
func New(db *sqlite.DB, spec string, log *zap.Logger) *Scheduler {
	return &Scheduler{db: db, spec: spec, cron: cron.New(), log: log}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RunOnce(time.Now()); err != nil {
			s.log.Warn("reminder job failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder %q: %w", s.spec, err)
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop. Running jobs finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce performs one reminder pass for the given time: at most one
// reminder per day, listing the periods whose window has opened today
// without a check-in. Reminders bypass the award-notification cap but a
// day that is fully checked in gets none.
func (s *Scheduler) RunOnce(now time.Time) error {
	sent, err := s.db.NotificationCountOnDayByType(now, domain.NotifyReminder)
	if err != nil {
		return fmt.Errorf("count reminders: %w", err)
	}
	if sent > 0 {
		return nil
	}

	missing, err := s.missingPeriods(now)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, len(missing))
	for i, p := range missing {
		names[i] = string(p)
	}

	_, err = s.db.InsertNotification(domain.Notification{
		Type:      domain.NotifyReminder,
		Title:     "Time to check in",
		Message:   fmt.Sprintf("You haven't checked in this %s yet.", strings.Join(names, " or ")),
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	metrics.RemindersSent.Inc()
	return nil
}

// missingPeriods returns today's periods whose window has already opened
// but have no entry. The pre-dawn tail of the evening window belongs to
// the previous day and is ignored here.
func (s *Scheduler) missingPeriods(now time.Time) ([]domain.TimePeriod, error) {
	entries, err := s.db.EntriesOnDay(now)
	if err != nil {
		return nil, fmt.Errorf("load today's entries: %w", err)
	}
	done := make(map[domain.TimePeriod]bool, 3)
	for _, e := range entries {
		done[e.Period] = true
	}

	opened := []domain.TimePeriod{}
	hour := now.Hour()
	if hour >= 5 {
		opened = append(opened, domain.Morning)
	}
	if hour >= 12 {
		opened = append(opened, domain.Afternoon)
	}
	if hour >= 17 {
		opened = append(opened, domain.Evening)
	}

	var missing []domain.TimePeriod
	for _, p := range opened {
		if !done[p] {
			missing = append(missing, p)
		}
	}
	return missing, nil
}
