package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal [daily-kcal]",
	Short: "Show or set the daily calorie goal (weekly goal is 7x)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGoal,
}

func init() {
	rootCmd.AddCommand(goalCmd)
}

func runGoal(_ *cobra.Command, args []string) error {
	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	if len(args) == 1 {
		daily, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal %q: want a whole number of calories", args[0])
		}
		if err := tr.SetDailyGoal(daily); err != nil {
			return err
		}
		warnPersist(tr)
	}

	g := tr.Goals()
	fmt.Printf("  Daily goal:  %s kcal\n", formatNumber(int64(g.DailyCalorieGoal)))
	fmt.Printf("  Weekly goal: %s kcal\n", formatNumber(int64(g.WeeklyCalorieGoal)))
	return nil
}
