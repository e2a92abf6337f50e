// Package insights derives display data from journal history: daily
// emotional-shift trends, word clouds, and calendar views. The
// computations are pure; Service only adds storage access.
package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/sundial-app/sundial/internal/domain"
	"github.com/sundial-app/sundial/internal/infra/sqlite"
)

// DaySummary aggregates one calendar day of entries.
type DaySummary struct {
	Date     time.Time `json:"date"`
	Count    int       `json:"count"`
	AvgShift float64   `json:"avg_shift"`
}

// TrendPoint is one sample of the rolling emotional-shift average.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// WordCount is one word-cloud entry.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// CalendarDay marks which periods were checked in on one day of a month.
type CalendarDay struct {
	Day     int                 `json:"day"`
	Periods []domain.TimePeriod `json:"periods"`
}

// MonthCalendar is the check-in calendar for one month.
type MonthCalendar struct {
	Year  int           `json:"year"`
	Month time.Month    `json:"month"`
	Days  []CalendarDay `json:"days"`
}

// ─── Pure Derivations ───────────────────────────────────────────────────────

// GroupByDay collapses entries into per-day summaries, oldest first.
func GroupByDay(entries []domain.JournalEntry) []DaySummary {
	type bucket struct {
		count int
		sum   float64
	}
	buckets := make(map[time.Time]*bucket)
	for _, e := range entries {
		day := truncateDay(e.CreatedAt)
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		b.count++
		b.sum += e.EmotionalShift
	}

	days := make([]DaySummary, 0, len(buckets))
	for day, b := range buckets {
		days = append(days, DaySummary{
			Date:     day,
			Count:    b.count,
			AvgShift: b.sum / float64(b.count),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// ShiftTrend computes the rolling average of the daily emotional shift
// over a window of calendar days. Each day with entries produces one
// point averaging that day and the window-1 preceding days with data.
func ShiftTrend(entries []domain.JournalEntry, window int) ([]TrendPoint, error) {
	if window < 1 {
		return nil, domain.ErrInvalidWindow
	}

	days := GroupByDay(entries)
	points := make([]TrendPoint, 0, len(days))
	for i := range days {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for _, d := range days[start : i+1] {
			sum += d.AvgShift
		}
		points = append(points, TrendPoint{
			Date:  days[i].Date,
			Value: sum / float64(i+1-start),
		})
	}
	return points, nil
}

// Downsample reduces a series to at most maxPoints samples, always
// keeping the first and last point so the chart endpoints stay honest.
func Downsample(points []TrendPoint, maxPoints int) []TrendPoint {
	if maxPoints <= 0 || len(points) <= maxPoints {
		return points
	}
	if maxPoints == 1 {
		return points[:1]
	}

	out := make([]TrendPoint, 0, maxPoints)
	step := float64(len(points)-1) / float64(maxPoints-1)
	for i := 0; i < maxPoints; i++ {
		idx := int(float64(i)*step + 0.5)
		if idx > len(points)-1 {
			idx = len(points) - 1
		}
		out = append(out, points[idx])
	}
	return out
}

// WordCloud counts the significant words across gratitude notes and free
// notes, most frequent first. Ties break alphabetically.
func WordCloud(entries []domain.JournalEntry, limit int) []WordCount {
	counts := make(map[string]int)
	for _, e := range entries {
		for _, w := range tokenize(e.Gratitude) {
			counts[w]++
		}
		for _, w := range tokenize(e.Note) {
			counts[w]++
		}
	}

	words := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}

// Calendar builds the month view: which days have entries, and which
// periods were covered on each.
func Calendar(entries []domain.JournalEntry, year int, month time.Month) (MonthCalendar, error) {
	if month < time.January || month > time.December {
		return MonthCalendar{}, domain.ErrInvalidMonth
	}

	marks := make(map[int]map[domain.TimePeriod]bool)
	for _, e := range entries {
		if e.CreatedAt.Year() != year || e.CreatedAt.Month() != month {
			continue
		}
		day := e.CreatedAt.Day()
		if marks[day] == nil {
			marks[day] = make(map[domain.TimePeriod]bool, 3)
		}
		marks[day][e.Period] = true
	}

	cal := MonthCalendar{Year: year, Month: month}
	for day := 1; day <= daysInMonth(year, month); day++ {
		cd := CalendarDay{Day: day}
		for _, p := range domain.AllPeriods() {
			if marks[day][p] {
				cd.Periods = append(cd.Periods, p)
			}
		}
		cal.Days = append(cal.Days, cd)
	}
	return cal, nil
}

// ─── Service ────────────────────────────────────────────────────────────────

// Service loads journal history and applies the pure derivations.
type Service struct {
	db *sqlite.DB
}

// NewService creates an insights service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Trend returns the rolling shift trend, downsampled to maxPoints.
func (s *Service) Trend(window, maxPoints int) ([]TrendPoint, error) {
	entries, err := s.db.ListEntries(0)
	if err != nil {
		return nil, err
	}
	points, err := ShiftTrend(entries, window)
	if err != nil {
		return nil, err
	}
	return Downsample(points, maxPoints), nil
}

// Words returns the word cloud over the full journal history.
func (s *Service) Words(limit int) ([]WordCount, error) {
	entries, err := s.db.ListEntries(0)
	if err != nil {
		return nil, err
	}
	return WordCloud(entries, limit), nil
}

// Month returns the check-in calendar for one month.
func (s *Service) Month(year int, month time.Month) (MonthCalendar, error) {
	entries, err := s.db.ListEntries(0)
	if err != nil {
		return MonthCalendar{}, err
	}
	return Calendar(entries, year, month)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// stopwords excluded from word clouds.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "was": true, "are": true, "but": true, "not": true,
	"you": true, "all": true, "have": true, "had": true, "her": true,
	"his": true, "they": true, "them": true, "from": true, "she": true,
	"him": true, "its": true, "were": true, "been": true, "being": true,
	"very": true, "just": true, "about": true, "today": true,
}

// tokenize lowercases, strips non-letters, and drops stopwords and
// words shorter than three letters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})

	var words []string
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if len(f) < 3 || stopwords[f] {
			continue
		}
		words = append(words, f)
	}
	return words
}
