package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/tracker"
)

var flagYes bool

var deleteCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	e, ok := tr.Entry(id)
	if !ok {
		return fmt.Errorf("entry %d: %w", id, tracker.ErrNotFound)
	}

	if !flagYes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Delete this entry?").
			Description(describeEntry(e)).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			fmt.Println("  Kept.")
			return nil
		}
	}

	if err := tr.DeleteEntry(id); err != nil {
		return err
	}
	warnPersist(tr)

	fmt.Printf("  Deleted %s\n", describeEntry(e))
	return nil
}
