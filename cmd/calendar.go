package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Monthly heat-map of calories against the daily goal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, args []string) error {
	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	date, err := selectedDate(tr)
	if err != nil {
		return err
	}
	now := tr.Now()
	year, month := now.Year(), int(now.Month())
	if len(args) == 1 {
		t, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("invalid month %q (want YYYY-MM)", args[0])
		}
		year, month = t.Year(), int(t.Month())
	}

	goal := tr.Goals().DailyCalorieGoal
	grid := pipeline.BuildMonth(tr.Entries(), goal, year, month, date, tr.Today())

	total, tracked := 0, 0
	for _, d := range grid.Days {
		total += d.Calories
		if d.Calories > 0 {
			tracked++
		}
	}

	fmt.Println()
	fmt.Print(cli.RenderMonth(grid))
	fmt.Println()
	fmt.Println(cli.RenderLegend())
	fmt.Println()
	fmt.Printf("  %d day(s) tracked, %s total\n", tracked, cli.FormatCalories(total))
	fmt.Println()
	return nil
}
