package reminder_test

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sundial-app/sundial/internal/domain"
	"github.com/sundial-app/sundial/internal/infra/reminder"
	"github.com/sundial-app/sundial/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func reminders(t *testing.T, db *sqlite.DB) []domain.Notification {
	t.Helper()
	notifs, err := db.ListNotifications(false, 50)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	var out []domain.Notification
	for _, n := range notifs {
		if n.Type == domain.NotifyReminder {
			out = append(out, n)
		}
	}
	return out
}

func TestRunOnce_SendsForMissingPeriods(t *testing.T) {
	db := testDB(t)
	s := reminder.New(db, "0 20 * * *", zap.NewNop())

	evening := time.Date(2025, 7, 1, 20, 0, 0, 0, time.Local)
	if err := s.RunOnce(evening); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := reminders(t, db)
	if len(got) != 1 {
		t.Fatalf("got %d reminders, want 1", len(got))
	}
}

func TestRunOnce_OncePerDay(t *testing.T) {
	db := testDB(t)
	s := reminder.New(db, "0 20 * * *", zap.NewNop())

	evening := time.Date(2025, 7, 1, 20, 0, 0, 0, time.Local)
	if err := s.RunOnce(evening); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := s.RunOnce(evening.Add(time.Hour)); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if got := reminders(t, db); len(got) != 1 {
		t.Errorf("got %d reminders, want 1", len(got))
	}
}

func TestRunOnce_SkipsUnopenedWindows(t *testing.T) {
	db := testDB(t)
	s := reminder.New(db, "0 20 * * *", zap.NewNop())

	// 09:00: only the morning window has opened. A morning entry means
	// nothing is missing yet.
	morning := time.Date(2025, 7, 1, 9, 0, 0, 0, time.Local)
	err := db.InsertEntry(domain.JournalEntry{
		ID: "m", CreatedAt: morning, Period: domain.Morning,
		InitialEmotion: "calm", Gratitude: "g",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := s.RunOnce(morning.Add(30 * time.Minute)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := reminders(t, db); len(got) != 0 {
		t.Errorf("got %d reminders, want 0", len(got))
	}
}

func TestRunOnce_QuietWhenFullyCheckedIn(t *testing.T) {
	db := testDB(t)
	s := reminder.New(db, "0 20 * * *", zap.NewNop())

	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)
	for i, p := range []domain.TimePeriod{domain.Morning, domain.Afternoon, domain.Evening} {
		hours := []int{9, 14, 19}
		err := db.InsertEntry(domain.JournalEntry{
			ID: string(p), CreatedAt: day.Add(time.Duration(hours[i]) * time.Hour), Period: p,
			InitialEmotion: "calm", Gratitude: "g",
		})
		if err != nil {
			t.Fatalf("insert %s: %v", p, err)
		}
	}

	if err := s.RunOnce(day.Add(20 * time.Hour)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := reminders(t, db); len(got) != 0 {
		t.Errorf("got %d reminders, want 0", len(got))
	}
}

func TestStart_RejectsBadSpec(t *testing.T) {
	db := testDB(t)
	s := reminder.New(db, "not a cron spec", zap.NewNop())
	if err := s.Start(); err == nil {
		s.Stop()
		t.Error("expected error for invalid cron spec")
	}
}
