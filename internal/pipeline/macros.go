package pipeline

import "github.com/theirongolddev/caltrack/internal/model"

// Energy per gram of each macro.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// FromCalories splits calories 30/40/30 into protein, carbs and fat grams.
func FromCalories(cal int) model.Macros {
	if cal <= 0 {
		return model.Macros{}
	}
	c := float64(cal)
	return model.Macros{
		Protein: int(roundHalfUp(c * 0.3 / KcalPerGramProtein)),
		Carbs:   int(roundHalfUp(c * 0.4 / KcalPerGramCarbs)),
		Fats:    int(roundHalfUp(c * 0.3 / KcalPerGramFat)),
	}
}

// FromMacros returns the calories in the given grams.
func FromMacros(protein, carbs, fats int) int {
	return protein*KcalPerGramProtein + carbs*KcalPerGramCarbs + fats*KcalPerGramFat
}

// MacrosMatch reports whether the macros account for cal within 1 kcal.
func MacrosMatch(cal, protein, carbs, fats int) bool {
	d := FromMacros(protein, carbs, fats) - cal
	return d >= -1 && d <= 1
}
