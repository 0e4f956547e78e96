package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motiva-learn/motiva/internal/app/engagement"
	"github.com/motiva-learn/motiva/internal/domain"
)

func init() {
	calcCmd.Flags().StringVar(&calcDifficulty, "difficulty", "medium", "Activity difficulty (easy, medium, hard, expert)")
	calcCmd.Flags().Float64Var(&calcDuration, "duration", 0, "Activity duration in minutes")
	calcCmd.Flags().Float64Var(&calcBonus, "bonus", 0, "Bonus multiplier (0.1 = +10%)")
	rootCmd.AddCommand(calcCmd)
}

var (
	calcDifficulty string
	calcDuration   float64
	calcBonus      float64
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Score an activity without touching any user state",
	RunE:  runCalc,
}

func runCalc(cmd *cobra.Command, args []string) error {
	activity := domain.Activity{
		Type:        "cli",
		Difficulty:  domain.Difficulty(calcDifficulty),
		DurationMin: calcDuration,
		Bonus:       calcBonus,
	}

	points, err := engagement.CalculatePoints(&activity)
	if err != nil {
		return err
	}

	fmt.Printf("%d points (%.0f min × %s, +%.0f%% bonus)\n",
		points, calcDuration, calcDifficulty, calcBonus*100)
	return nil
}
