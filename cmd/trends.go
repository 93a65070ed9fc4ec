package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "30-day averages and week-over-week trend",
	RunE:  runTrends,
}

func init() {
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(_ *cobra.Command, _ []string) error {
	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	today := tr.Today()
	entries := tr.Entries()
	a := pipeline.Analyze(entries, today)

	fmt.Println()
	fmt.Println(cli.RenderTitle("TRENDS  Last 30 days"))
	fmt.Println()

	if a.DaysTracked == 0 {
		fmt.Println("  No entries in the last 30 days.")
		fmt.Println()
		return nil
	}

	rows := [][]string{
		{"Days tracked", fmt.Sprintf("%d", a.DaysTracked)},
		{"Avg calories", cli.FormatCalories(a.Averages.Calories)},
		{"Avg protein", cli.FormatGrams(a.Averages.Protein)},
		{"Avg carbs", cli.FormatGrams(a.Averages.Carbs)},
		{"Avg fats", cli.FormatGrams(a.Averages.Fats)},
		{"---"},
	}
	if a.Trend != nil {
		rows = append(rows,
			[]string{"Trend", cli.FormatTrend(*a.Trend)},
			[]string{"Direction", trendLabel(a.Trend.Direction)},
		)
	} else {
		rows = append(rows, []string{"Trend", fmt.Sprintf("need 14 tracked days (%d so far)", a.DaysTracked)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	series := pipeline.DailySeries(entries, model.AddDays(today, -29), today)
	values := make([]float64, len(series))
	for i, d := range series {
		values[i] = float64(d.Calories)
	}
	fmt.Println()
	fmt.Printf("  %s\n", cli.RenderSparkline(values))
	fmt.Println()
	return nil
}

func trendLabel(d model.TrendDirection) string {
	switch d {
	case model.TrendIncreasing:
		return "Increasing"
	case model.TrendDecreasing:
		return "Decreasing"
	default:
		return "Stable"
	}
}
