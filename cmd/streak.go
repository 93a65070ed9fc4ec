package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Current logging streak and the last 7 days",
	RunE:  runStreak,
}

func init() {
	rootCmd.AddCommand(streakCmd)
}

func runStreak(_ *cobra.Command, _ []string) error {
	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	s := pipeline.ComputeStreaks(tr.Entries(), tr.Today())

	fmt.Println()
	fmt.Printf("  %d day streak\n\n", s.Current)

	header := make([]string, 0, len(s.Last7))
	row := make([]string, 0, len(s.Last7))
	for _, d := range s.Last7 {
		label := d.Weekday
		if d.IsToday {
			label = "Today"
		}
		header = append(header, label)
		mark := "·"
		if d.HasEntry {
			mark = "✓"
		}
		row = append(row, mark)
	}
	fmt.Print(cli.RenderTable(cli.Table{Headers: header, Rows: [][]string{row}}))
	fmt.Println()
	return nil
}
