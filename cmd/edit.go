package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/tracker"
)

var editFlags entryFlags

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an entry's meal, calories or macros",
	Long: "Change an entry. Setting --calories re-derives all macros; setting a macro\n" +
		"re-derives calories. Macros must account for calories within 1 kcal.",
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editFlags.register(editCmd, "")
	rootCmd.AddCommand(editCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entry id %q", s)
	}
	return id, nil
}

func runEdit(c *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	orig, ok := tr.Entry(id)
	if !ok {
		return fmt.Errorf("entry %d: %w", id, tracker.ErrNotFound)
	}

	form := tracker.NewEditForm(orig)
	if err := editFlags.apply(c, form); err != nil {
		return err
	}
	e, err := form.Apply(orig)
	if err != nil {
		return err
	}
	if err := tr.ReplaceEntry(e); err != nil {
		return err
	}
	warnPersist(tr)

	fmt.Printf("  Updated %s\n", describeEntry(e))
	return nil
}
