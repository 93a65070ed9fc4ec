package pipeline

import (
	"fmt"

	"github.com/theirongolddev/caltrack/internal/model"
)

// OnTarget reports whether total is between 80% and 100% of goal inclusive.
func OnTarget(total, goal int) bool {
	return total <= goal && float64(total) >= float64(goal)*0.8
}

// ComputeStreaks returns the last-7-day presence row, oldest first, and the
// current streak: consecutive days with at least one entry ending today, or
// ending yesterday while nothing has been logged today.
func ComputeStreaks(entries []model.Entry, today string) model.Streaks {
	logged := make(map[string]bool, len(entries))
	for _, e := range entries {
		logged[e.Date] = true
	}

	var s model.Streaks
	for i := 6; i >= 0; i-- {
		d := model.AddDays(today, -i)
		s.Last7 = append(s.Last7, model.StreakDay{
			Date:     d,
			Weekday:  weekdayShort(d),
			HasEntry: logged[d],
			IsToday:  d == today,
		})
	}

	day := today
	if !logged[day] {
		day = model.AddDays(today, -1)
	}
	for logged[day] {
		s.Current++
		prev := model.AddDays(day, -1)
		if prev == day {
			break
		}
		day = prev
	}
	return s
}

// WeeklyGraph returns the last 7 calendar days ending today as chart bars.
// A bar is Over when its total exceeds goal.
func WeeklyGraph(entries []model.Entry, goal int, today string) []model.GraphBar {
	series := DailySeries(entries, model.AddDays(today, -6), today)
	bars := make([]model.GraphBar, 0, len(series))
	for _, d := range series {
		bars = append(bars, model.GraphBar{
			Date:     d.Date,
			Label:    barLabel(d.Date),
			Calories: d.Calories,
			Over:     d.Calories > goal,
		})
	}
	return bars
}

func weekdayShort(date string) string {
	t, err := model.ParseDate(date)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}

func barLabel(date string) string {
	t, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d", t.Format("Mon"), t.Day())
}
