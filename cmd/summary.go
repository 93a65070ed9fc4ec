package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"dashboard"},
	Short:   "Progress for the selected day and week",
	RunE:    runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	date, err := selectedDate(tr)
	if err != nil {
		return err
	}
	today := tr.Today()
	entries := tr.Entries()
	goals := tr.Goals()

	day := pipeline.DayProgressFor(entries, goals, date, today)
	week := pipeline.WeekProgressFor(entries, goals, today)
	streaks := pipeline.ComputeStreaks(entries, today)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CALTRACK  %s  (%s)", cli.FormatDateLabel(date, today), date)))
	fmt.Println()

	goalStr := cli.FormatKcal(day.EffectiveGoal)
	if day.Plan.SpreadPerDay != 0 {
		goalStr += fmt.Sprintf("  (base %s, %s/day)",
			formatNumber(int64(goals.DailyCalorieGoal)),
			cli.FormatSigned(int(math.Round(day.Plan.SpreadPerDay))))
	}

	status := "Needs attention"
	if day.OnTarget {
		status = "On target"
	}

	rows := [][]string{
		{"Consumed", cli.FormatCalories(day.Consumed.Calories)},
		{"Goal", goalStr},
		{"Remaining", cli.FormatKcal(day.Remaining)},
		{"Progress", cli.RenderProgressBar(day.Percent, 20)},
		{"Status", status},
		{"---"},
		{"Protein", cli.FormatGrams(day.Consumed.Protein)},
		{"Carbs", cli.FormatGrams(day.Consumed.Carbs)},
		{"Fats", cli.FormatGrams(day.Consumed.Fats)},
		{"---"},
		{"Week", fmt.Sprintf("%s / %s", formatNumber(int64(week.Consumed)), cli.FormatCalories(week.WeeklyGoal))},
		{"Week remaining", cli.FormatCalories(week.Remaining)},
		{"Week progress", cli.RenderProgressBar(week.Percent, 20)},
		{"---"},
		{"Streak", fmt.Sprintf("%d day(s)  %s", streaks.Current, streakRow(streaks.Last7))},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(pipeline.EntriesForDate(entries, date)) == 0 {
		fmt.Println("\n  Nothing logged yet. Try `caltrack add --calories 500 --meal lunch`.")
	}
	fmt.Println()
	return nil
}

func streakRow(days []model.StreakDay) string {
	var b strings.Builder
	for _, d := range days {
		if d.HasEntry {
			b.WriteString("■")
		} else {
			b.WriteString("□")
		}
	}
	return b.String()
}
