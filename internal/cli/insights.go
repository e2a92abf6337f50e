package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/sundial-app/sundial/internal/daemon"
)

func init() {
	trendCmd.Flags().IntVar(&trendWindow, "window", 7, "Rolling average window in days")
	wordsCmd.Flags().IntVar(&wordsLimit, "limit", 20, "Maximum number of words to show")
	calendarCmd.Flags().IntVar(&calYear, "year", 0, "Year (defaults to current)")
	calendarCmd.Flags().IntVar(&calMonth, "month", 0, "Month 1-12 (defaults to current)")

	insightsCmd.AddCommand(trendCmd)
	insightsCmd.AddCommand(wordsCmd)
	insightsCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(insightsCmd)
}

var (
	trendWindow int
	wordsLimit  int
	calYear     int
	calMonth    int
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Explore trends from your journal history",
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the rolling emotional-shift trend",
	RunE:  runTrend,
}

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Show the most frequent journal words",
	RunE:  runWords,
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the check-in calendar for a month",
	RunE:  runCalendar,
}

func runTrend(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	points, err := d.Insights.Trend(trendWindow, 30)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}

	for _, p := range points {
		// Shift ranges -2..2; scale to a small bar around the midpoint.
		bars := int((p.Value + 2) * 5)
		if bars < 0 {
			bars = 0
		}
		fmt.Printf("%s  %+.2f  %s\n", p.Date.Format("2006-01-02"), p.Value, strings.Repeat("█", bars))
	}
	return nil
}

func runWords(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	words, err := d.Insights.Words(wordsLimit)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}

	for _, w := range words {
		fmt.Printf("%4d  %s\n", w.Count, w.Word)
	}
	return nil
}

func runCalendar(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	year, month := calYear, calMonth
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}

	cal, err := d.Insights.Month(year, time.Month(month))
	if err != nil {
		return err
	}

	fmt.Printf("%s %d\n", cal.Month, cal.Year)
	for _, day := range cal.Days {
		if len(day.Periods) == 0 {
			continue
		}
		marks := make([]string, 0, len(day.Periods))
		for _, p := range day.Periods {
			marks = append(marks, string(p))
		}
		fmt.Printf("  %2d  %s\n", day.Day, strings.Join(marks, ", "))
	}
	return nil
}
