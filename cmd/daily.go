package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Per-day totals for the last --days days",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	if flagDays <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	today := tr.Today()
	goal := tr.Goals().DailyCalorieGoal
	days := pipeline.DailySeries(tr.Entries(), model.AddDays(today, -(flagDays-1)), today)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY TOTALS  Last %dd", flagDays)))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		t, _ := model.ParseDate(d.Date)
		rows = append(rows, []string{
			d.Date,
			cli.FormatDayOfWeek(int(t.Weekday())),
			formatNumber(int64(d.Calories)),
			cli.FormatGrams(d.Protein),
			cli.FormatGrams(d.Carbs),
			cli.FormatGrams(d.Fats),
			pipeline.Classify(d.Calories, goal).String(),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "kcal", "Protein", "Carbs", "Fats", "Of goal"},
		Rows:    rows,
	}))
	return nil
}
