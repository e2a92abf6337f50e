package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sundial-app/sundial/internal/daemon"
)

func init() {
	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "Maximum entries to show")
	rootCmd.AddCommand(journalCmd)
}

var journalLimit int

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"log"},
	Short:   "List recent check-in entries",
	RunE:    runJournal,
}

func runJournal(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.DB.ListEntries(journalLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No check-ins yet. Run 'sundial checkin' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tPERIOD\tEMOTION\tGRATITUDE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Period,
			e.InitialEmotion,
			truncate(e.Gratitude, 48),
		)
	}
	return w.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
