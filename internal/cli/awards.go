package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sundial-app/sundial/internal/app/engagement"
	"github.com/sundial-app/sundial/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(badgesCmd)
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and which you have earned",
	RunE:  runAchievements,
}

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List badges and which you have earned",
	RunE:  runBadges,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	earned, err := d.DB.EarnedAchievementSet()
	if err != nil {
		return err
	}

	defs := engagement.AllAchievements()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACHIEVEMENT\tPOINTS\tEARNED")
	count := 0
	for _, a := range defs {
		mark := ""
		if earned[a.ID] {
			mark = "✓"
			count++
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", a.Name, a.Points, mark)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d of %d earned\n", count, len(defs))
	return nil
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	earned, err := d.DB.EarnedBadgeSet()
	if err != nil {
		return err
	}

	defs := engagement.AllBadges()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tCATEGORY\tEARNED")
	count := 0
	for _, b := range defs {
		mark := ""
		if earned[b.ID] {
			mark = "✓"
			count++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, b.Category, mark)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d of %d earned\n", count, len(defs))
	return nil
}
