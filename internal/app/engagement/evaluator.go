package engagement

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sundial-app/sundial/internal/domain"
	"github.com/sundial-app/sundial/internal/infra/metrics"
)

// EvalInput is the full state the rule evaluator inspects. Everything is
// passed explicitly — the evaluator holds no ambient state beyond the
// static catalogs.
type EvalInput struct {
	Streak          *domain.CheckInStreak
	IsFirstCheckIn  bool
	AllPeriodsToday bool
	Entries         []domain.JournalEntry

	// Mood labels around the triggering check-in, for the mood-shift rule.
	// Empty strings disable that rule.
	PreviousMood string
	CurrentMood  string

	EarnedAchievements map[string]bool
	EarnedBadges       map[string]bool
}

// RuleGroup is one independent award rule. A panic inside Evaluate is
// caught by the evaluator and does not affect sibling groups.
type RuleGroup struct {
	Name     string
	Evaluate func(EvalInput) []domain.AwardEvent
}

// Evaluator decides which badges and achievements a check-in earns.
// It is pure and re-entrant: re-running against unchanged state awards
// nothing new, because every rule consults the already-earned sets.
type Evaluator struct {
	achievements []domain.AchievementDef
	badges       []domain.BadgeDef
	groups       []RuleGroup
	log          *zap.Logger
}

// NewEvaluator creates an evaluator over the static catalogs with the six
// standard rule groups.
func NewEvaluator(log *zap.Logger) *Evaluator {
	e := &Evaluator{
		achievements: AllAchievements(),
		badges:       AllBadges(),
		log:          log,
	}
	e.groups = []RuleGroup{
		{Name: "first-check-in", Evaluate: e.evalFirstCheckIn},
		{Name: "streak-thresholds", Evaluate: e.evalStreakThresholds},
		{Name: "all-periods", Evaluate: e.evalAllPeriods},
		{Name: "mood-pattern", Evaluate: e.evalMoodPattern},
		{Name: "journal-frequency", Evaluate: e.evalJournalFrequency},
		{Name: "mood-shift", Evaluate: e.evalMoodShift},
	}
	return e
}

// AddRuleGroup appends a custom rule group, evaluated after the standard
// six with the same failure isolation.
func (e *Evaluator) AddRuleGroup(g RuleGroup) {
	e.groups = append(e.groups, g)
}

// Achievements returns the achievement catalog (for display).
func (e *Evaluator) Achievements() []domain.AchievementDef { return e.achievements }

// Badges returns the badge catalog (for display).
func (e *Evaluator) Badges() []domain.BadgeDef { return e.badges }

// EvaluateCheckIn runs every rule group against the input and returns the
// newly-qualifying awards. One failing group never blocks the others: its
// panic is logged and it contributes no awards this round.
func (e *Evaluator) EvaluateCheckIn(in EvalInput) []domain.AwardEvent {
	var events []domain.AwardEvent
	for _, g := range e.groups {
		events = append(events, e.runGroup(g, in)...)
	}
	return events
}

func (e *Evaluator) runGroup(g RuleGroup, in EvalInput) (events []domain.AwardEvent) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RuleGroupFailures.WithLabelValues(g.Name).Inc()
			e.log.Error("rule group failed",
				zap.String("group", g.Name),
				zap.Any("panic", r),
			)
			events = nil
		}
	}()
	return g.Evaluate(in)
}

// ─── Rule Group 1: First Check-In ───────────────────────────────────────────

func (e *Evaluator) evalFirstCheckIn(in EvalInput) []domain.AwardEvent {
	if !in.IsFirstCheckIn {
		return nil
	}

	var events []domain.AwardEvent
	if !in.EarnedBadges[FirstCheckInBadgeID] {
		if def, ok := e.badgeByID(FirstCheckInBadgeID); ok {
			events = append(events, badgeEvent(def, true))
		}
	}
	if !in.EarnedAchievements[FirstCheckInAchievementID] {
		if def, ok := e.achievementByID(FirstCheckInAchievementID); ok {
			events = append(events, achievementEvent(def, true))
		}
	}
	return events
}

// ─── Rule Group 2: Streak Thresholds ────────────────────────────────────────

// Qualifying thresholds are evaluated in ascending order. Everything that
// qualifies is persisted, but only the first newly-qualifying reward
// notifies, so a long-overdue evaluation does not flood the user.
func (e *Evaluator) evalStreakThresholds(in EvalInput) []domain.AwardEvent {
	if in.Streak == nil {
		return nil
	}
	current := in.Streak.MaxCount()

	gated := make([]domain.AchievementDef, 0, len(e.achievements))
	for _, def := range e.achievements {
		if def.RequiresStreak > 0 {
			gated = append(gated, def)
		}
	}
	sort.Slice(gated, func(i, j int) bool { return gated[i].RequiresStreak < gated[j].RequiresStreak })

	var events []domain.AwardEvent
	notified := false
	for _, def := range gated {
		if in.EarnedAchievements[def.ID] || current < def.RequiresStreak {
			continue
		}
		events = append(events, achievementEvent(def, !notified))
		notified = true
	}

	// Streak-category badges share the threshold semantics and the
	// single-notification budget.
	streakBadges := e.badgesInCategory(domain.CatStreak)
	sort.Slice(streakBadges, func(i, j int) bool { return streakBadges[i].Threshold < streakBadges[j].Threshold })
	for _, def := range streakBadges {
		if def.Threshold <= 0 || in.EarnedBadges[def.ID] || current < def.Threshold {
			continue
		}
		events = append(events, badgeEvent(def, !notified))
		notified = true
	}
	return events
}

// ─── Rule Group 3: All Periods Completed ────────────────────────────────────

func (e *Evaluator) evalAllPeriods(in EvalInput) []domain.AwardEvent {
	if !in.AllPeriodsToday || in.EarnedBadges[AllPeriodsBadgeID] {
		return nil
	}
	def, ok := e.badgeByID(AllPeriodsBadgeID)
	if !ok {
		return nil
	}
	return []domain.AwardEvent{badgeEvent(def, true)}
}

// ─── Rule Group 4: Mood Patterns ────────────────────────────────────────────

// A mood-pattern badge with threshold N qualifies once any single initial
// emotion has been logged N times across the journal history.
func (e *Evaluator) evalMoodPattern(in EvalInput) []domain.AwardEvent {
	counts := make(map[string]int)
	peak := 0
	for _, entry := range in.Entries {
		counts[entry.InitialEmotion]++
		if counts[entry.InitialEmotion] > peak {
			peak = counts[entry.InitialEmotion]
		}
	}

	return e.thresholdBadges(domain.CatMoodPattern, peak, in.EarnedBadges)
}

// ─── Rule Group 5: Journal Frequency ────────────────────────────────────────

func (e *Evaluator) evalJournalFrequency(in EvalInput) []domain.AwardEvent {
	return e.thresholdBadges(domain.CatJournalFrequency, len(in.Entries), in.EarnedBadges)
}

// ─── Rule Group 6: Mood Shift ───────────────────────────────────────────────

// A jump of two or more steps on the ordinal mood scale earns the
// positive-shift badge. Unknown labels score 0 and never qualify.
func (e *Evaluator) evalMoodShift(in EvalInput) []domain.AwardEvent {
	prev := domain.MoodScore(in.PreviousMood)
	curr := domain.MoodScore(in.CurrentMood)
	if prev == 0 || curr == 0 || curr-prev < 2 {
		return nil
	}
	if in.EarnedBadges[MoodLiftBadgeID] {
		return nil
	}
	def, ok := e.badgeByID(MoodLiftBadgeID)
	if !ok {
		return nil
	}
	return []domain.AwardEvent{badgeEvent(def, true)}
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// thresholdBadges awards every not-yet-earned badge in the category whose
// threshold the value meets, notifying for at most one per call.
func (e *Evaluator) thresholdBadges(cat domain.BadgeCategory, value int, earned map[string]bool) []domain.AwardEvent {
	defs := e.badgesInCategory(cat)
	sort.Slice(defs, func(i, j int) bool { return defs[i].Threshold < defs[j].Threshold })

	var events []domain.AwardEvent
	notified := false
	for _, def := range defs {
		if def.Threshold <= 0 || earned[def.ID] || value < def.Threshold {
			continue
		}
		events = append(events, badgeEvent(def, !notified))
		notified = true
	}
	return events
}

func (e *Evaluator) badgeByID(id string) (domain.BadgeDef, bool) {
	for _, def := range e.badges {
		if def.ID == id {
			return def, true
		}
	}
	return domain.BadgeDef{}, false
}

func (e *Evaluator) achievementByID(id string) (domain.AchievementDef, bool) {
	for _, def := range e.achievements {
		if def.ID == id {
			return def, true
		}
	}
	return domain.AchievementDef{}, false
}

func (e *Evaluator) badgesInCategory(cat domain.BadgeCategory) []domain.BadgeDef {
	var defs []domain.BadgeDef
	for _, def := range e.badges {
		if def.Category == cat {
			defs = append(defs, def)
		}
	}
	return defs
}

func badgeEvent(def domain.BadgeDef, notify bool) domain.AwardEvent {
	return domain.AwardEvent{Kind: domain.AwardBadge, ID: def.ID, Name: def.Name, Notify: notify}
}

func achievementEvent(def domain.AchievementDef, notify bool) domain.AwardEvent {
	return domain.AwardEvent{Kind: domain.AwardAchievement, ID: def.ID, Name: def.Name, Points: def.Points, Notify: notify}
}
