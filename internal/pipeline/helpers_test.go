package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/caltrack/internal/model"
)

// Week of 2023-12-31 (Sunday) through 2024-01-06 (Saturday).
const testToday = "2024-01-06"

var nextTestID int64 = 1

func entry(date string, cal int) model.Entry {
	nextTestID++
	m := FromCalories(cal)
	return model.Entry{
		ID:        nextTestID,
		Date:      date,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(nextTestID) * time.Second),
		Calories:  cal,
		Protein:   m.Protein,
		Carbs:     m.Carbs,
		Fats:      m.Fats,
		MealType:  model.Lunch,
	}
}

func weekEntries(t *testing.T, today string, totals ...int) []model.Entry {
	t.Helper()
	var out []model.Entry
	for i, cal := range totals {
		out = append(out, entry(model.AddDays(WeekStart(today), i), cal))
	}
	return out
}
