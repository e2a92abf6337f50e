package engagement

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/sundial-app/sundial/internal/domain"
	"github.com/sundial-app/sundial/internal/infra/sqlite"
)

const dayMillis = 24 * 60 * 60 * 1000

// CalculateDateStreak counts the consecutive-calendar-day run ending at
// the most recent date. Input order is irrelevant — the slice is sorted
// internally.
//
// The gap between adjacent dates is ceil(diffMillis / dayMillis): two
// timestamps 25 hours apart are a 2-day gap (streak breaks) while two
// timestamps 23 hours apart crossing midnight are a 1-day gap (streak
// continues). Callers depend on this day-boundary sensitivity.
func CalculateDateStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	if len(dates) == 1 {
		return 1
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	streak := 1
	for i := 0; i < len(sorted)-1; i++ {
		diff := sorted[i].Sub(sorted[i+1]).Milliseconds()
		gapDays := int(math.Ceil(float64(diff) / float64(dayMillis)))
		if gapDays != 1 {
			break
		}
		streak++
	}
	return streak
}

// CalculateOverallStreak merges the three per-period counters into the
// single display value. Counters without a corroborating last-check-in
// timestamp are disregarded.
//
// When two or more periods are active, the afternoon counter overrides
// the running maximum. This mirrors the shipped behavior exactly; do not
// change it without product guidance.
func CalculateOverallStreak(s *domain.CheckInStreak) int {
	if s == nil {
		return 0
	}
	if !s.HasAnyCheckIn() {
		return 0
	}

	result := s.MaxCount()
	if s.ActivePeriods() >= 2 && s.Afternoon > result {
		result = s.Afternoon
	}
	return result
}

// ─── Streak Store ───────────────────────────────────────────────────────────

// StreakService owns the persistent per-period streak store.
type StreakService struct {
	db *sqlite.DB
}

// NewStreakService creates a streak service.
func NewStreakService(db *sqlite.DB) *StreakService {
	return &StreakService{db: db}
}

// Current loads the streak store from the database.
func (s *StreakService) Current() (domain.CheckInStreak, error) {
	var streak domain.CheckInStreak

	load := func(countKey, lastKey string, count *int, last **time.Time) error {
		v, err := s.db.GetStreakValue(countKey)
		if err != nil {
			return fmt.Errorf("get %s: %w", countKey, err)
		}
		if v != "" {
			*count, _ = strconv.Atoi(v)
		}

		v, err = s.db.GetStreakValue(lastKey)
		if err != nil {
			return fmt.Errorf("get %s: %w", lastKey, err)
		}
		if v != "" {
			ts, _ := strconv.ParseInt(v, 10, 64)
			t := time.Unix(ts, 0)
			*last = &t
		}

		// Counter-timestamp invariant: one without the other is dropped.
		if *last == nil {
			*count = 0
		} else if *count == 0 {
			*last = nil
		}
		return nil
	}

	if err := load("streak_morning", "streak_last_morning", &streak.Morning, &streak.LastMorningCheckIn); err != nil {
		return streak, err
	}
	if err := load("streak_afternoon", "streak_last_afternoon", &streak.Afternoon, &streak.LastAfternoonCheckIn); err != nil {
		return streak, err
	}
	if err := load("streak_evening", "streak_last_evening", &streak.Evening, &streak.LastEveningCheckIn); err != nil {
		return streak, err
	}
	return streak, nil
}

// RecordCheckIn recomputes the counter for the period the check-in falls
// into and stamps its last-check-in time. periodDates must contain the
// dates of every check-in in that period, including this one. Only the
// matching period is mutated.
func (s *StreakService) RecordCheckIn(period domain.TimePeriod, at time.Time, periodDates []time.Time) (domain.CheckInStreak, error) {
	streak, err := s.Current()
	if err != nil {
		return streak, err
	}

	count := CalculateDateStreak(periodDates)
	stamp := at

	switch period {
	case domain.Morning:
		streak.Morning = count
		streak.LastMorningCheckIn = &stamp
	case domain.Afternoon:
		streak.Afternoon = count
		streak.LastAfternoonCheckIn = &stamp
	case domain.Evening:
		streak.Evening = count
		streak.LastEveningCheckIn = &stamp
	}

	if err := s.save(streak); err != nil {
		return streak, err
	}
	return streak, nil
}

// Reset zeroes the store. Explicit user action only — streaks are never
// deleted otherwise.
func (s *StreakService) Reset() error {
	return s.save(domain.CheckInStreak{})
}

// save persists the store to the streak KV table.
func (s *StreakService) save(streak domain.CheckInStreak) error {
	pairs := map[string]string{
		"streak_morning":        strconv.Itoa(streak.Morning),
		"streak_afternoon":      strconv.Itoa(streak.Afternoon),
		"streak_evening":        strconv.Itoa(streak.Evening),
		"streak_last_morning":   unixOrEmpty(streak.LastMorningCheckIn),
		"streak_last_afternoon": unixOrEmpty(streak.LastAfternoonCheckIn),
		"streak_last_evening":   unixOrEmpty(streak.LastEveningCheckIn),
	}
	for k, v := range pairs {
		if err := s.db.SetStreakValue(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

func unixOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return strconv.FormatInt(t.Unix(), 10)
}
