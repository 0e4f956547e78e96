// Package cli implements the Motiva command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "motiva",
	Short: "Motiva — learning gamification engine",
	Long: `Motiva tracks learner points, streaks, achievements, badges,
reward tiers, and leaderboard rankings, and serves them to the
dashboard over a JSON API.`,
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
