package pipeline

import (
	"github.com/theirongolddev/caltrack/internal/model"
)

// WeekStart returns the Sunday on or before today.
func WeekStart(today string) string {
	t, err := model.ParseDate(today)
	if err != nil {
		return today
	}
	return model.AddDays(today, -int(t.Weekday()))
}

// WeekDates returns the 7 dates, Sunday through Saturday, of the week that
// contains today.
func WeekDates(today string) []string {
	start := WeekStart(today)
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = model.AddDays(start, i)
	}
	return dates
}

// Redistribute carries the deficits and surpluses of the days before
// selected forward onto the days from selected through today.
//
// The week is always the one containing today, whatever week selected falls
// in. A selected date from an earlier week has no before days and keeps the
// plain daily goal.
func Redistribute(entries []model.Entry, dailyGoal int, selected, today string) model.Redistribution {
	r := model.Redistribution{
		WeekDates: WeekDates(today),
		DailyGoal: dailyGoal,
	}

	for _, d := range r.WeekDates {
		if d < selected {
			r.Before = append(r.Before, d)
			deficit := dailyGoal - TotalsForDate(entries, d).Calories
			r.Deficits = append(r.Deficits, deficit)
			r.TotalDifference += deficit
		}
		if d >= selected && d <= today {
			r.OnOrAfterSelected = append(r.OnOrAfterSelected, d)
		}
	}

	if n := len(r.OnOrAfterSelected); n > 0 {
		r.SpreadPerDay = float64(r.TotalDifference) / float64(n)
	}

	r.EffectiveGoal = float64(dailyGoal)
	if r.SpreadPerDay != 0 {
		r.EffectiveGoal += r.SpreadPerDay
	}
	return r
}

// DayProgressFor measures the selected date against its redistributed goal.
func DayProgressFor(entries []model.Entry, goals model.GoalConfig, selected, today string) model.DayProgress {
	plan := Redistribute(entries, goals.DailyCalorieGoal, selected, today)
	consumed := TotalsForDate(entries, selected)

	p := model.DayProgress{
		Date:          selected,
		Consumed:      consumed,
		EffectiveGoal: plan.EffectiveGoal,
		Remaining:     max(0, plan.EffectiveGoal-float64(consumed.Calories)),
		OnTarget:      OnTarget(consumed.Calories, goals.DailyCalorieGoal),
		Plan:          plan,
	}
	if plan.EffectiveGoal > 0 {
		p.Percent = min(100, float64(consumed.Calories)/plan.EffectiveGoal*100)
	}
	return p
}

// WeekProgressFor measures the current Sunday-start week against the weekly
// goal.
func WeekProgressFor(entries []model.Entry, goals model.GoalConfig, today string) model.WeekProgress {
	dates := WeekDates(today)
	days := AggregateDays(entries)

	w := model.WeekProgress{
		WeekDates:  dates,
		WeeklyGoal: goals.WeeklyCalorieGoal,
	}
	for _, d := range dates {
		t := days[d]
		w.Consumed += t.Calories
		w.Days = append(w.Days, model.DayTotals{Date: d, Totals: t})
	}

	w.Remaining = max(0, w.WeeklyGoal-w.Consumed)
	if w.WeeklyGoal > 0 {
		w.Percent = min(100, float64(w.Consumed)/float64(w.WeeklyGoal)*100)
	}
	return w
}

// StepDate moves selected by delta days. Moves that would leave the range
// from the start of the current week through today are refused, and the
// original date is returned with false.
func StepDate(selected string, delta int, today string) (string, bool) {
	next := model.AddDays(selected, delta)
	if next > today || next < WeekStart(today) {
		return selected, false
	}
	return next, true
}

// CanSelect reports whether date may be chosen directly: any valid date up
// to and including today.
func CanSelect(date, today string) bool {
	if _, err := model.ParseDate(date); err != nil {
		return false
	}
	return date <= today
}
