package pipeline

import (
	"time"

	"github.com/theirongolddev/caltrack/internal/model"
)

// Classify buckets a day's total by its percentage of goal. A zero total is
// NoData; exactly 100% is Over100.
func Classify(total, goal int) model.Intensity {
	if total <= 0 {
		return model.NoData
	}
	if goal <= 0 {
		return model.Over100
	}

	pct := float64(total) / float64(goal) * 100
	switch {
	case pct >= 100:
		return model.Over100
	case pct >= 75:
		return model.Under100
	case pct >= 50:
		return model.Under75
	default:
		return model.Under50
	}
}

// BuildMonth lays out a Sunday-start grid for the given month. Only today
// and earlier days are selectable.
func BuildMonth(entries []model.Entry, goal, year, month int, selected, today string) model.MonthGrid {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	g := model.MonthGrid{
		Year:    first.Year(),
		Month:   int(first.Month()),
		Leading: int(first.Weekday()),
	}

	totals := AggregateDays(entries)
	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1).Format(model.DateLayout)
		cal := totals[date].Calories
		g.Days = append(g.Days, model.CalendarDay{
			Date:       date,
			Day:        day,
			Calories:   cal,
			Intensity:  Classify(cal, goal),
			IsToday:    date == today,
			IsPast:     date < today,
			IsSelected: date == selected,
			Selectable: date <= today,
		})
	}
	return g
}

// ShiftMonth moves a year/month pair by delta months, wrapping the year.
func ShiftMonth(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), int(t.Month())
}
