package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/tracker"
)

var addFlags entryFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food entry for the selected date",
	Example: `  caltrack add --meal lunch --calories 650
  caltrack add -m dinner --protein 50 --carbs 100 --fats 20
  caltrack add -D yesterday -m snack -c 200`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addFlags.register(addCmd, "breakfast")
	rootCmd.AddCommand(addCmd)
}

func runAdd(c *cobra.Command, _ []string) error {
	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	date, err := selectedDate(tr)
	if err != nil {
		return err
	}

	form := tracker.NewAddForm(date)
	if err := addFlags.apply(c, form); err != nil {
		return err
	}

	e, err := form.Build(tr.NextID(), tr.Now())
	if err != nil {
		return err
	}
	if err := tr.AddEntry(e); err != nil {
		return err
	}
	warnPersist(tr)

	fmt.Printf("  Added %s\n", describeEntry(e))
	return nil
}
