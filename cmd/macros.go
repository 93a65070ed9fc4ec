package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

var macrosCmd = &cobra.Command{
	Use:   "macros <calories> | macros <protein> <carbs> <fats>",
	Short: "Convert calories to a 30/40/30 macro split, or macros to calories",
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 3 {
			return fmt.Errorf("want 1 argument (calories) or 3 (protein carbs fats), got %d", len(args))
		}
		return nil
	},
	RunE: runMacros,
}

func init() {
	rootCmd.AddCommand(macrosCmd)
}

func runMacros(_ *cobra.Command, args []string) error {
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid amount %q: want a non-negative whole number", a)
		}
		nums[i] = n
	}

	if len(nums) == 1 {
		m := pipeline.FromCalories(nums[0])
		fmt.Printf("  %s  ->  protein %s  carbs %s  fats %s\n",
			cli.FormatCalories(nums[0]), cli.FormatGrams(m.Protein), cli.FormatGrams(m.Carbs), cli.FormatGrams(m.Fats))
		return nil
	}

	cal := pipeline.FromMacros(nums[0], nums[1], nums[2])
	fmt.Printf("  protein %s  carbs %s  fats %s  ->  %s\n",
		cli.FormatGrams(nums[0]), cli.FormatGrams(nums[1]), cli.FormatGrams(nums[2]), cli.FormatCalories(cal))
	return nil
}
