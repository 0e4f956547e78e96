package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/motiva-learn/motiva/internal/daemon"
)

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Seed sample learners and print the ranked leaderboard",
	Long: `Run the engine in-process against sample data. Useful for
eyeballing ranking, tier, and achievement behavior without a server.`,
	RunE: runDemo,
}

// demoSeed is a small cohort spanning every reward tier.
var demoSeed = []struct {
	userID  string
	points  int
	streak  int
	courses int
}{
	{"ada", 12400, 21, 14},
	{"grace", 7150, 9, 8},
	{"alan", 3300, 2, 4},
	{"edsger", 1480, 5, 3},
	{"barbara", 640, 1, 1},
	{"donald", 120, 0, 0},
}

func runDemo(cmd *cobra.Command, args []string) error {
	d := daemon.NewWithConfig(daemon.DefaultConfig())

	for _, seed := range demoSeed {
		if _, err := d.Ledger.AddPoints(seed.userID, seed.points); err != nil {
			return err
		}
		if _, err := d.Streaks.UpdateStreak(seed.userID, seed.streak); err != nil {
			return err
		}
		if err := d.Ledger.SetCoursesCompleted(seed.userID, seed.courses); err != nil {
			return err
		}
	}

	board := d.Leaderboard.Leaderboard("all_time")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tUSER\tPOINTS\tSTREAK\tACH\tBADGES\tTIER\tBADGE")
	for _, entry := range board.Users {
		tier, err := d.Tiers.RewardTier(entry.UserID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			entry.Rank, entry.UserID, entry.Points, entry.Streak,
			entry.Achievements, entry.Badges, tier.Tier, entry.RankBadge)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	for _, seed := range demoSeed {
		insights, err := d.Scorer.Insights(seed.userID)
		if err != nil {
			return err
		}
		fmt.Printf("%s: engagement %d (%s)\n", seed.userID, insights.EngagementScore, insights.MotivationLevel)
	}
	return nil
}
