package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Entries for the selected date, newest first",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	date, err := selectedDate(tr)
	if err != nil {
		return err
	}
	entries := pipeline.EntriesForDate(tr.Entries(), date)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ENTRIES  %s  (%s)", cli.FormatDateLabel(date, tr.Today()), date)))
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("  No entries for this day.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(entries)+2)
	for _, e := range entries {
		rows = append(rows, []string{
			e.MealType.Title(),
			e.Timestamp.Local().Format("15:04"),
			formatNumber(int64(e.Calories)),
			cli.FormatGrams(e.Protein),
			cli.FormatGrams(e.Carbs),
			cli.FormatGrams(e.Fats),
			strconv.FormatInt(e.ID, 10),
		})
	}
	t := pipeline.TotalsForDate(entries, date)
	rows = append(rows, []string{"---"}, []string{
		"Total", "",
		formatNumber(int64(t.Calories)),
		cli.FormatGrams(t.Protein),
		cli.FormatGrams(t.Carbs),
		cli.FormatGrams(t.Fats),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Meal", "Time", "kcal", "Protein", "Carbs", "Fats", "ID"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
