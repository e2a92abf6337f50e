package engagement_test

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sundial-app/sundial/internal/app/engagement"
	"github.com/sundial-app/sundial/internal/domain"
	"github.com/sundial-app/sundial/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ═══════════════════════════════════════════════════════════════════════════
// Period Classification Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestClassifyPeriod_Boundaries(t *testing.T) {
	tests := []struct {
		hour int
		want domain.TimePeriod
	}{
		{0, domain.Evening},
		{4, domain.Evening},
		{5, domain.Morning},
		{11, domain.Morning},
		{12, domain.Afternoon},
		{16, domain.Afternoon},
		{17, domain.Evening},
		{23, domain.Evening},
	}
	for _, tt := range tests {
		at := time.Date(2025, 7, 1, tt.hour, 30, 0, 0, time.Local)
		if got := engagement.ClassifyPeriod(at); got != tt.want {
			t.Errorf("hour %d: got %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestClassifyPeriod_Total(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		at := time.Date(2025, 7, 1, hour, 0, 0, 0, time.Local)
		p := engagement.ClassifyPeriod(at)
		if !p.Valid() {
			t.Errorf("hour %d: got invalid period %q", hour, p)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Date Streak Tests
// ═══════════════════════════════════════════════════════════════════════════

func day(offset int) time.Time {
	base := time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestDateStreak_Empty(t *testing.T) {
	if got := engagement.CalculateDateStreak(nil); got != 0 {
		t.Errorf("empty: got %d, want 0", got)
	}
}

func TestDateStreak_Singleton(t *testing.T) {
	if got := engagement.CalculateDateStreak([]time.Time{day(0)}); got != 1 {
		t.Errorf("singleton: got %d, want 1", got)
	}
}

func TestDateStreak_Consecutive(t *testing.T) {
	dates := []time.Time{day(0), day(-1), day(-2), day(-3), day(-4)}
	if got := engagement.CalculateDateStreak(dates); got != 5 {
		t.Errorf("5 consecutive days: got %d, want 5", got)
	}
}

func TestDateStreak_BreaksAtGap(t *testing.T) {
	// d0 and d0-1 are consecutive; d0-3 leaves a hole.
	dates := []time.Time{day(0), day(-1), day(-3)}
	if got := engagement.CalculateDateStreak(dates); got != 2 {
		t.Errorf("gap: got %d, want 2", got)
	}
}

func TestDateStreak_OrderIndependent(t *testing.T) {
	perms := [][]time.Time{
		{day(0), day(-1), day(-2)},
		{day(-2), day(0), day(-1)},
		{day(-1), day(-2), day(0)},
	}
	for i, dates := range perms {
		if got := engagement.CalculateDateStreak(dates); got != 3 {
			t.Errorf("permutation %d: got %d, want 3", i, got)
		}
	}
}

func TestDateStreak_InputNotMutated(t *testing.T) {
	dates := []time.Time{day(-2), day(0), day(-1)}
	engagement.CalculateDateStreak(dates)
	if !dates[0].Equal(day(-2)) || !dates[1].Equal(day(0)) || !dates[2].Equal(day(-1)) {
		t.Error("input slice was reordered")
	}
}

func TestDateStreak_SameDayDuplicates(t *testing.T) {
	// Two check-ins at the identical instant: zero gap, streak stops at 1.
	dates := []time.Time{day(0), day(0)}
	if got := engagement.CalculateDateStreak(dates); got != 1 {
		t.Errorf("duplicates: got %d, want 1", got)
	}
}

func TestDateStreak_SubDayGapAcrossMidnight(t *testing.T) {
	// 23h apart crossing midnight rounds up to a 1-day gap: continues.
	late := time.Date(2025, 7, 20, 23, 0, 0, 0, time.UTC)
	early := time.Date(2025, 7, 21, 22, 0, 0, 0, time.UTC)
	if got := engagement.CalculateDateStreak([]time.Time{early, late}); got != 2 {
		t.Errorf("23h apart: got %d, want 2", got)
	}

	// 25h apart is a 2-day gap: breaks.
	far := time.Date(2025, 7, 22, 0, 0, 0, 0, time.UTC)
	if got := engagement.CalculateDateStreak([]time.Time{far, late}); got != 1 {
		t.Errorf("25h apart: got %d, want 1", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Overall Streak Tests
// ═══════════════════════════════════════════════════════════════════════════

func ts(offset int) *time.Time {
	t := day(offset)
	return &t
}

func TestOverallStreak_Nil(t *testing.T) {
	if got := engagement.CalculateOverallStreak(nil); got != 0 {
		t.Errorf("nil: got %d, want 0", got)
	}
}

func TestOverallStreak_NoTimestamps(t *testing.T) {
	// Counters without corroborating timestamps are disregarded.
	s := &domain.CheckInStreak{Morning: 4, Afternoon: 2, Evening: 1}
	if got := engagement.CalculateOverallStreak(s); got != 0 {
		t.Errorf("no timestamps: got %d, want 0", got)
	}
}

func TestOverallStreak_SinglePeriod(t *testing.T) {
	s := &domain.CheckInStreak{Morning: 3, LastMorningCheckIn: ts(0)}
	if got := engagement.CalculateOverallStreak(s); got != 3 {
		t.Errorf("single period: got %d, want 3", got)
	}
}

func TestOverallStreak_MultiPeriod(t *testing.T) {
	s := &domain.CheckInStreak{
		Morning: 1, Afternoon: 5, Evening: 2,
		LastMorningCheckIn:   ts(0),
		LastAfternoonCheckIn: ts(0),
		LastEveningCheckIn:   ts(0),
	}
	if got := engagement.CalculateOverallStreak(s); got != 5 {
		t.Errorf("multi period: got %d, want 5", got)
	}
}

func TestOverallStreak_MaxWins(t *testing.T) {
	s := &domain.CheckInStreak{
		Morning: 7, Afternoon: 3,
		LastMorningCheckIn:   ts(0),
		LastAfternoonCheckIn: ts(0),
	}
	if got := engagement.CalculateOverallStreak(s); got != 7 {
		t.Errorf("max wins: got %d, want 7", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Store Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestStreakService_RecordAndLoad(t *testing.T) {
	db := testDB(t)
	svc := engagement.NewStreakService(db)

	dates := []time.Time{day(0), day(-1), day(-2)}
	streak, err := svc.RecordCheckIn(domain.Morning, day(0), dates)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if streak.Morning != 3 {
		t.Errorf("morning = %d, want 3", streak.Morning)
	}
	if streak.Afternoon != 0 || streak.Evening != 0 {
		t.Error("recording morning touched other periods")
	}

	// Reload from disk.
	loaded, err := svc.Current()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Morning != 3 {
		t.Errorf("loaded morning = %d, want 3", loaded.Morning)
	}
	if loaded.LastMorningCheckIn == nil {
		t.Fatal("loaded morning timestamp is nil")
	}
	if loaded.LastMorningCheckIn.Unix() != day(0).Unix() {
		t.Errorf("loaded timestamp = %v, want %v", loaded.LastMorningCheckIn, day(0))
	}
}

func TestStreakService_InvariantRepair(t *testing.T) {
	db := testDB(t)

	// Counter with no timestamp: dropped on load.
	if err := db.SetStreakValue("streak_morning", "9"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := engagement.NewStreakService(db)
	streak, err := svc.Current()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if streak.Morning != 0 {
		t.Errorf("orphan counter survived: %d", streak.Morning)
	}
	if streak.LastMorningCheckIn != nil {
		t.Error("phantom timestamp appeared")
	}
}

func TestStreakService_Reset(t *testing.T) {
	db := testDB(t)
	svc := engagement.NewStreakService(db)

	if _, err := svc.RecordCheckIn(domain.Evening, day(0), []time.Time{day(0)}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := svc.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	streak, err := svc.Current()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if streak.HasAnyCheckIn() || streak.MaxCount() != 0 {
		t.Errorf("reset left state behind: %+v", streak)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Evaluator Tests
// ═══════════════════════════════════════════════════════════════════════════

func evalInput() engagement.EvalInput {
	return engagement.EvalInput{
		Streak:             &domain.CheckInStreak{},
		EarnedAchievements: map[string]bool{},
		EarnedBadges:       map[string]bool{},
	}
}

func hasAward(events []domain.AwardEvent, kind domain.AwardKind, id string) bool {
	for _, ev := range events {
		if ev.Kind == kind && ev.ID == id {
			return true
		}
	}
	return false
}

func TestEvaluator_FirstCheckIn(t *testing.T) {
	e := engagement.NewEvaluator(zap.NewNop())

	in := evalInput()
	in.IsFirstCheckIn = true
	events := e.EvaluateCheckIn(in)

	if !hasAward(events, domain.AwardAchievement, engagement.FirstCheckInAchievementID) {
		t.Error("missing first-check-in achievement")
	}
	if !hasAward(events, domain.AwardBadge, engagement.FirstCheckInBadgeID) {
		t.Error("missing first-check-in badge")
	}
}

func TestEvaluator_Idempotent(t *testing.T) {
	e := engagement.NewEvaluator(zap.NewNop())

	in := evalInput()
	in.IsFirstCheckIn = true
	in.Streak = &domain.CheckInStreak{Morning: 7, LastMorningCheckIn: ts(0)}

	first := e.EvaluateCheckIn(in)
	if len(first) == 0 {
		t.Fatal("expected awards on first evaluation")
	}

	// Mark everything earned, re-run on unchanged state: nothing new.
	for _, ev := range first {
		switch ev.Kind {
		case domain.AwardAchievement:
			in.EarnedAchievements[ev.ID] = true
		case domain.AwardBadge:
			in.EarnedBadges[ev.ID] = true
		}
	}
	second := e.EvaluateCheckIn(in)
	if len(second) != 0 {
		t.Errorf("re-evaluation produced %d new awards: %+v", len(second), second)
	}
}

func TestEvaluator_StreakThresholds(t *testing.T) {
	e := engagement.NewEvaluator(zap.NewNop())

	in := evalInput()
	in.Streak = &domain.CheckInStreak{Afternoon: 7, LastAfternoonCheckIn: ts(0)}
	events := e.EvaluateCheckIn(in)

	if !hasAward(events, domain.AwardAchievement, "streak_3") {
		t.Error("missing streak_3")
	}
	if !hasAward(events, domain.AwardAchievement, "streak_7") {
		t.Error("missing streak_7")
	}
	if hasAward(events, domain.AwardAchievement, "streak_14") {
		t.Error("streak_14 granted at 7 days")
	}
	if !hasAward(events, domain.AwardBadge, "streak-week") {
		t.Error("missing streak-week badge")
	}

	// Only the first newly-qualifying reward may notify.
	notifying := 0
	for _, ev := range events {
		if ev.Notify {
			notifying++
		}
	}
	if notifying != 1 {
		t.Errorf("%d awards set to notify, want 1", notifying)
	}
}

func TestEvaluator_AllPeriodsBadge(t *testing.T) {
	e := engagement.NewEvaluator(zap.NewNop())

	in := evalInput()
	in.AllPeriodsToday = true
	events := e.EvaluateCheckIn(in)
	if !hasAward(events, domain.AwardBadge, engagement.AllPeriodsBadgeID) {
		t.Error("missing all-periods badge")
	}

	in.EarnedBadges[engagement.AllPeriodsBadgeID] = true
	events = e.EvaluateCheckIn(in)
	if hasAward(events, domain.AwardBadge, engagement.AllPeriodsBadgeID) {
		t.Error("all-periods badge granted twice")
	}
}

func TestEvaluator_MoodShift(t *testing.T) {
	e := engagement.NewEvaluator(zap.NewNop())

	tests := []struct {
		prev, curr string
		want       bool
	}{
		{"bad", "great", true},    // +3
		{"terrible", "okay", true}, // +2
		{"okay", "good", false},   // +1
		{"great", "bad", false},   // negative
		{"", "great", false},      // unknown disables the rule
		{"nonsense", "great", false},
	}
	for _, tt := range tests {
		in := evalInput()
		in.PreviousMood = tt.prev
		in.CurrentMood = tt.curr
		events := e.EvaluateCheckIn(in)
		got := hasAward(events, domain.AwardBadge, engagement.MoodLiftBadgeID)
		if got != tt.want {
			t.Errorf("%q -> %q: badge = %v, want %v", tt.prev, tt.curr, got, tt.want)
		}
	}
}

func TestEvaluator_MoodPatternAndFrequency(t *testing.T) {
	e := engagement.NewEvaluator(zap.NewNop())

	entries := make([]domain.JournalEntry, 0, 10)
	for i := 0; i < 10; i++ {
		emotion := "calm"
		if i%2 == 1 {
			emotion = "anxious"
		}
		entries = append(entries, domain.JournalEntry{InitialEmotion: emotion})
	}

	in := evalInput()
	in.Entries = entries
	events := e.EvaluateCheckIn(in)

	// 5 occurrences of "calm" hits the familiar-feeling threshold.
	if !hasAward(events, domain.AwardBadge, "familiar-feeling") {
		t.Error("missing familiar-feeling badge")
	}
	// 10 total entries hits journal-10.
	if !hasAward(events, domain.AwardBadge, "journal-10") {
		t.Error("missing journal-10 badge")
	}
	if hasAward(events, domain.AwardBadge, "journal-50") {
		t.Error("journal-50 granted at 10 entries")
	}
}

func TestEvaluator_PanicIsolation(t *testing.T) {
	e := engagement.NewEvaluator(zap.NewNop())
	e.AddRuleGroup(engagement.RuleGroup{
		Name: "broken",
		Evaluate: func(engagement.EvalInput) []domain.AwardEvent {
			panic("boom")
		},
	})

	in := evalInput()
	in.IsFirstCheckIn = true

	var events []domain.AwardEvent
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("panic escaped the evaluator: %v", r)
			}
		}()
		events = e.EvaluateCheckIn(in)
	}()

	// The healthy groups still produced their awards.
	if !hasAward(events, domain.AwardAchievement, engagement.FirstCheckInAchievementID) {
		t.Error("healthy group suppressed by failing sibling")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Notifier Tests
// ═══════════════════════════════════════════════════════════════════════════

func midday(offset int) time.Time {
	return time.Date(2025, 7, 20+offset, 12, 0, 0, 0, time.Local)
}

func TestNotifier_DispatchAwards(t *testing.T) {
	db := testDB(t)
	n := engagement.NewNotifier(db, zap.NewNop())

	events := []domain.AwardEvent{
		{Kind: domain.AwardAchievement, ID: "a", Name: "A", Notify: true},
		{Kind: domain.AwardBadge, ID: "b", Name: "B", Notify: false},
	}
	ids, err := n.DispatchAwards(events, midday(0))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("dispatched %d notifications, want 1", len(ids))
	}

	notifs, err := n.List(false, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(notifs))
	}
	if notifs[0].Type != domain.NotifyAchievement {
		t.Errorf("type = %s, want %s", notifs[0].Type, domain.NotifyAchievement)
	}
}

func TestNotifier_DailyCap(t *testing.T) {
	db := testDB(t)
	policy := domain.NotificationPolicy{MaxPerDay: 2, QuietStart: "22:00", QuietEnd: "08:00"}
	n := engagement.NewNotifierWithPolicy(db, policy, zap.NewNop())

	for i := 0; i < 4; i++ {
		_, err := n.Create(domain.Notification{
			Type: domain.NotifyBadge, Title: "t", Message: "m", CreatedAt: midday(0),
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	notifs, err := n.List(false, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notifs) != 2 {
		t.Errorf("stored %d notifications, want 2 (cap)", len(notifs))
	}
}

func TestNotifier_QuietHours(t *testing.T) {
	db := testDB(t)
	n := engagement.NewNotifier(db, zap.NewNop())

	lateNight := time.Date(2025, 7, 20, 23, 30, 0, 0, time.Local)
	id, err := n.Create(domain.Notification{
		Type: domain.NotifyBadge, Title: "t", Message: "m", CreatedAt: lateNight,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 0 {
		t.Errorf("quiet-hour notification stored with id %d", id)
	}

	earlyMorning := time.Date(2025, 7, 21, 6, 0, 0, 0, time.Local)
	id, err = n.Create(domain.Notification{
		Type: domain.NotifyBadge, Title: "t", Message: "m", CreatedAt: earlyMorning,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 0 {
		t.Error("quiet hours should wrap past midnight")
	}
}

func TestNotifier_ReadDelete(t *testing.T) {
	db := testDB(t)
	n := engagement.NewNotifier(db, zap.NewNop())

	id, err := n.Create(domain.Notification{
		Type: domain.NotifyStreak, Title: "t", Message: "m", CreatedAt: midday(0),
	})
	if err != nil || id == 0 {
		t.Fatalf("create: id=%d err=%v", id, err)
	}

	count, err := n.UnreadCount()
	if err != nil || count != 1 {
		t.Fatalf("unread = %d err=%v, want 1", count, err)
	}

	if err := n.MarkRead(id); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	count, _ = n.UnreadCount()
	if count != 0 {
		t.Errorf("unread after read = %d, want 0", count)
	}

	if err := n.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := n.Delete(id); err != domain.ErrNotificationNotFound {
		t.Errorf("second delete: got %v, want ErrNotificationNotFound", err)
	}
}
