package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/sundial-app/sundial/internal/app/checkin"
	"github.com/sundial-app/sundial/internal/daemon"
)

func init() {
	checkinCmd.Flags().StringVar(&checkinEmotion, "emotion", "", "How you feel right now (required)")
	checkinCmd.Flags().StringVar(&checkinSecondary, "secondary", "", "A secondary emotion, if any")
	checkinCmd.Flags().Float64Var(&checkinShift, "shift", 0, "Emotional shift during the session, -2 to 2")
	checkinCmd.Flags().StringVar(&checkinGratitude, "gratitude", "", "Something you are grateful for (required)")
	checkinCmd.Flags().StringVar(&checkinNote, "note", "", "Free-form journal note")
	checkinCmd.Flags().StringVar(&checkinBefore, "mood-before", "", "Mood before the session (terrible|bad|okay|good|great)")
	checkinCmd.Flags().StringVar(&checkinAfter, "mood-after", "", "Mood after the session")
	rootCmd.AddCommand(checkinCmd)
}

var (
	checkinEmotion   string
	checkinSecondary string
	checkinShift     float64
	checkinGratitude string
	checkinNote      string
	checkinBefore    string
	checkinAfter     string
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record a wellness check-in",
	Long: `Record a check-in for the current time period. Updates streaks and
evaluates achievements and badges.`,
	RunE: runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.CheckIns.Submit(checkin.SubmitInput{
		At:               time.Now(),
		InitialEmotion:   checkinEmotion,
		SecondaryEmotion: checkinSecondary,
		EmotionalShift:   checkinShift,
		Gratitude:        checkinGratitude,
		Note:             checkinNote,
		PreviousMood:     checkinBefore,
		CurrentMood:      checkinAfter,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Checked in for the %s. Streak: %d day(s).\n", res.Entry.Period, res.OverallStreak)
	for _, a := range res.Awards {
		fmt.Printf("  🏆 %s (+%d points)\n", a.Name, a.Points)
	}
	if res.AwardError != "" {
		fmt.Printf("  note: %s\n", res.AwardError)
	}
	return nil
}
