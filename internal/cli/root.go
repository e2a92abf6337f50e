// Package cli implements the Sundial command-line interface using Cobra.
// Each subcommand maps to a daemon capability (checkin, streak, serve, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sundial",
	Short: "Sundial — daily wellness check-ins and streaks",
	Long: `Sundial tracks daily wellness check-ins: emotions, gratitude and
journaling, with streaks, achievements and badges to keep the habit going.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
