package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "This week's totals, goal redistribution and the last 7 days chart",
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

func runWeek(_ *cobra.Command, _ []string) error {
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

	week := pipeline.WeekProgressFor(entries, goals, today)
	plan := pipeline.Redistribute(entries, goals.DailyCalorieGoal, date, today)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WEEK  %s to %s", week.WeekDates[0], week.WeekDates[6])))
	fmt.Println()

	deficits := make(map[string]int, len(plan.Before))
	for i, d := range plan.Before {
		deficits[d] = plan.Deficits[i]
	}

	rows := make([][]string, 0, len(week.Days)+3)
	for _, d := range week.Days {
		delta := ""
		if v, ok := deficits[d.Date]; ok {
			delta = cli.FormatSigned(v)
		}
		marker := ""
		switch {
		case d.Date == date:
			marker = " <"
		case d.Date > today:
			marker = " ·"
		}
		rows = append(rows, []string{
			cli.FormatDateLabel(d.Date, today) + marker,
			formatNumber(int64(d.Calories)),
			delta,
			pipeline.Classify(d.Calories, goals.DailyCalorieGoal).String(),
		})
	}
	rows = append(rows, []string{"---"}, []string{
		"Week",
		formatNumber(int64(week.Consumed)),
		cli.FormatSigned(plan.TotalDifference),
		cli.FormatPercent(week.Percent),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day", "kcal", "Under/Over", "Of goal"},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Printf("  Weekly goal %s, remaining %s\n", cli.FormatCalories(week.WeeklyGoal), cli.FormatCalories(week.Remaining))
	fmt.Printf("  Adjusted goal for %s: %s", date, cli.FormatKcal(plan.EffectiveGoal))
	if n := len(plan.OnOrAfterSelected); n > 0 && plan.SpreadPerDay != 0 {
		fmt.Printf("  (%s spread over %d day(s))", cli.FormatSigned(plan.TotalDifference), n)
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("  Last 7 days")
	fmt.Print(cli.RenderWeeklyBars(pipeline.WeeklyGraph(entries, goals.DailyCalorieGoal, today), goals.DailyCalorieGoal, 30))
	fmt.Println()
	return nil
}
