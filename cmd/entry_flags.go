package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/tracker"
)

// entryFlags are the value flags shared by add and edit.
type entryFlags struct {
	meal     string
	calories string
	protein  string
	carbs    string
	fats     string
}

func (f *entryFlags) register(c *cobra.Command, defaultMeal string) {
	c.Flags().StringVarP(&f.meal, "meal", "m", defaultMeal, "Meal type: breakfast, lunch, dinner or snack")
	c.Flags().StringVarP(&f.calories, "calories", "c", "", "Calories (macros derived 30/40/30 if not given)")
	c.Flags().StringVarP(&f.protein, "protein", "p", "", "Protein grams")
	c.Flags().StringVar(&f.carbs, "carbs", "", "Carb grams")
	c.Flags().StringVarP(&f.fats, "fats", "f", "", "Fat grams")
}

// apply feeds changed flags into form in the order a user would fill it in:
// calories first, then each macro, so typed macros re-derive calories.
func (f *entryFlags) apply(c *cobra.Command, form *tracker.EntryForm) error {
	if c.Flags().Changed("meal") || form.Mode == tracker.AddForm {
		if err := form.SetField(tracker.FieldMeal, f.meal); err != nil {
			return err
		}
	}
	if c.Flags().Changed("calories") {
		form.SetCalories(f.calories)
	}
	macros := []struct {
		flag  string
		field tracker.Field
		value string
	}{
		{"protein", tracker.FieldProtein, f.protein},
		{"carbs", tracker.FieldCarbs, f.carbs},
		{"fats", tracker.FieldFats, f.fats},
	}
	for _, m := range macros {
		if c.Flags().Changed(m.flag) {
			if err := form.SetMacro(m.field, m.value); err != nil {
				return err
			}
		}
	}
	return nil
}

func describeEntry(e model.Entry) string {
	return fmt.Sprintf("%s %s (P %s  C %s  F %s) on %s [id %d]",
		e.MealType.Title(),
		cli.FormatCalories(e.Calories),
		cli.FormatGrams(e.Protein),
		cli.FormatGrams(e.Carbs),
		cli.FormatGrams(e.Fats),
		e.Date,
		e.ID,
	)
}
