package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sundial-app/sundial/internal/app/engagement"
	"github.com/sundial-app/sundial/internal/daemon"
)

func init() {
	streakCmd.AddCommand(streakResetCmd)
	rootCmd.AddCommand(streakCmd)
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show current check-in streaks",
	RunE:  runStreak,
}

var streakResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all streak counters to zero",
	RunE:  runStreakReset,
}

func runStreak(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	streak, err := d.Streaks.Current()
	if err != nil {
		return err
	}

	overall := engagement.CalculateOverallStreak(&streak)
	fmt.Printf("Overall streak: %d day(s)\n", overall)
	fmt.Printf("  Morning:   %d\n", streak.Morning)
	fmt.Printf("  Afternoon: %d\n", streak.Afternoon)
	fmt.Printf("  Evening:   %d\n", streak.Evening)
	return nil
}

func runStreakReset(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Streaks.Reset(); err != nil {
		return err
	}
	fmt.Println("Streaks reset.")
	return nil
}
