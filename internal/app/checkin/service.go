// Package checkin implements the check-in submission pipeline: persist
// the journal entry, update the streak store, run the award rules, and
// dispatch notifications — strictly in that order, so later steps observe
// the effects of earlier ones.
package checkin

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sundial-app/sundial/internal/app/engagement"
	"github.com/sundial-app/sundial/internal/domain"
	"github.com/sundial-app/sundial/internal/infra/metrics"
	"github.com/sundial-app/sundial/internal/infra/sqlite"
)

// Service sequences a check-in submission end to end.
type Service struct {
	db        *sqlite.DB
	streaks   *engagement.StreakService
	evaluator *engagement.Evaluator
	notifier  *engagement.Notifier
	log       *zap.Logger
}

// NewService wires the pipeline. All collaborators are explicit.
func NewService(db *sqlite.DB, streaks *engagement.StreakService, evaluator *engagement.Evaluator, notifier *engagement.Notifier, log *zap.Logger) *Service {
	return &Service{db: db, streaks: streaks, evaluator: evaluator, notifier: notifier, log: log}
}

// SubmitInput is one user-submitted check-in.
type SubmitInput struct {
	At               time.Time `json:"at"` // zero = now
	InitialEmotion   string    `json:"initial_emotion"`
	SecondaryEmotion string    `json:"secondary_emotion,omitempty"`
	EmotionalShift   float64   `json:"emotional_shift"`
	Gratitude        string    `json:"gratitude"`
	Note             string    `json:"note,omitempty"`

	// Mood labels for the mood-shift badge rule; optional.
	PreviousMood string `json:"previous_mood,omitempty"`
	CurrentMood  string `json:"current_mood,omitempty"`
}

// Result is the aggregate outcome of one submission. AwardError carries a
// non-fatal failure in the secondary award pipeline: the entry itself is
// saved, but some or all awards/notifications were skipped.
type Result struct {
	Entry         domain.JournalEntry  `json:"entry"`
	Streak        domain.CheckInStreak `json:"streak"`
	OverallStreak int                  `json:"overall_streak"`
	Awards        []domain.AwardEvent  `json:"awards,omitempty"`
	Notifications []int64              `json:"notification_ids,omitempty"`
	AwardError    string               `json:"award_error,omitempty"`
}

// Submit runs the pipeline. A persistence failure on the entry itself is
// fatal and returns an error; failures past that point degrade gracefully
// and are reported in Result.AwardError.
func (s *Service) Submit(in SubmitInput) (Result, error) {
	var res Result

	if strings.TrimSpace(in.Gratitude) == "" {
		metrics.CheckInFailures.Inc()
		return res, domain.ErrEmptyGratitude
	}
	if strings.TrimSpace(in.InitialEmotion) == "" {
		metrics.CheckInFailures.Inc()
		return res, domain.ErrMissingEmotion
	}

	at := in.At
	if at.IsZero() {
		at = time.Now()
	}

	entry := domain.JournalEntry{
		ID:               uuid.NewString(),
		CreatedAt:        at,
		Period:           engagement.ClassifyPeriod(at),
		InitialEmotion:   in.InitialEmotion,
		SecondaryEmotion: in.SecondaryEmotion,
		EmotionalShift:   clampShift(in.EmotionalShift),
		Gratitude:        in.Gratitude,
		Note:             in.Note,
	}

	// Step 1: persist the entry. Failure here is fatal.
	if err := s.db.InsertEntry(entry); err != nil {
		metrics.CheckInFailures.Inc()
		return res, fmt.Errorf("persist entry: %w", err)
	}
	res.Entry = entry
	metrics.CheckIns.WithLabelValues(string(entry.Period)).Inc()

	// Step 2: update the streak store for the classified period.
	dates, err := s.db.EntryDatesByPeriod(entry.Period)
	if err != nil {
		return s.degrade(res, fmt.Errorf("load period dates: %w", err))
	}
	streak, err := s.streaks.RecordCheckIn(entry.Period, at, dates)
	if err != nil {
		return s.degrade(res, fmt.Errorf("update streak: %w", err))
	}
	res.Streak = streak
	res.OverallStreak = engagement.CalculateOverallStreak(&streak)
	publishStreakMetrics(streak, res.OverallStreak)

	// Step 3: evaluate award rules against the now-updated state.
	input, err := s.buildEvalInput(streak, entry, in)
	if err != nil {
		return s.degrade(res, fmt.Errorf("load award state: %w", err))
	}
	events := s.evaluator.EvaluateCheckIn(input)

	// Step 4: persist awards, then dispatch notifications.
	for _, ev := range events {
		isNew, err := s.persistAward(ev, at)
		if err != nil {
			return s.degrade(res, fmt.Errorf("persist award %s: %w", ev.ID, err))
		}
		if isNew {
			metrics.AwardsGranted.WithLabelValues(string(ev.Kind)).Inc()
			res.Awards = append(res.Awards, ev)
		}
	}

	ids, err := s.notifier.DispatchAwards(res.Awards, at)
	res.Notifications = ids
	if err != nil {
		return s.degrade(res, fmt.Errorf("dispatch notifications: %w", err))
	}

	return res, nil
}

// buildEvalInput gathers the evaluator's view of the world after the
// entry and streak writes have landed.
func (s *Service) buildEvalInput(streak domain.CheckInStreak, entry domain.JournalEntry, in SubmitInput) (engagement.EvalInput, error) {
	total, err := s.db.CountEntries()
	if err != nil {
		return engagement.EvalInput{}, err
	}

	today, err := s.db.EntriesOnDay(entry.CreatedAt)
	if err != nil {
		return engagement.EvalInput{}, err
	}
	periodsToday := make(map[domain.TimePeriod]bool, 3)
	for _, e := range today {
		periodsToday[e.Period] = true
	}

	entries, err := s.db.ListEntries(0)
	if err != nil {
		return engagement.EvalInput{}, err
	}

	earnedAch, err := s.db.EarnedAchievementSet()
	if err != nil {
		return engagement.EvalInput{}, err
	}
	earnedBadges, err := s.db.EarnedBadgeSet()
	if err != nil {
		return engagement.EvalInput{}, err
	}

	return engagement.EvalInput{
		Streak:             &streak,
		IsFirstCheckIn:     total == 1,
		AllPeriodsToday:    len(periodsToday) == 3,
		Entries:            entries,
		PreviousMood:       in.PreviousMood,
		CurrentMood:        in.CurrentMood,
		EarnedAchievements: earnedAch,
		EarnedBadges:       earnedBadges,
	}, nil
}

func (s *Service) persistAward(ev domain.AwardEvent, at time.Time) (bool, error) {
	switch ev.Kind {
	case domain.AwardAchievement:
		return s.db.EarnAchievement(ev.ID, at)
	default:
		return s.db.EarnBadge(ev.ID, at)
	}
}

// degrade logs a secondary-pipeline failure and returns the partial
// result. The entry is saved by the time this is reachable, so the
// check-in still counts.
func (s *Service) degrade(res Result, err error) (Result, error) {
	s.log.Warn("award pipeline degraded", zap.String("entry", res.Entry.ID), zap.Error(err))
	res.AwardError = err.Error()
	return res, nil
}

func publishStreakMetrics(streak domain.CheckInStreak, overall int) {
	metrics.StreakDays.WithLabelValues(string(domain.Morning)).Set(float64(streak.Morning))
	metrics.StreakDays.WithLabelValues(string(domain.Afternoon)).Set(float64(streak.Afternoon))
	metrics.StreakDays.WithLabelValues(string(domain.Evening)).Set(float64(streak.Evening))
	metrics.OverallStreak.Set(float64(overall))
}

// clampShift bounds the emotional-shift scalar to [-2, 2].
func clampShift(v float64) float64 {
	if v > 2 {
		return 2
	}
	if v < -2 {
		return -2
	}
	return v
}
