package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/caltrack/internal/model"
)

func TestWeekDatesSundayStart(t *testing.T) {
	dates := WeekDates("2024-01-03")
	if len(dates) != 7 {
		t.Fatalf("len = %d, want 7", len(dates))
	}
	if dates[0] != "2023-12-31" || dates[6] != "2024-01-06" {
		t.Errorf("week = %s..%s, want 2023-12-31..2024-01-06", dates[0], dates[6])
	}
	if got := WeekStart("2023-12-31"); got != "2023-12-31" {
		t.Errorf("WeekStart(Sunday) = %s", got)
	}
}

func TestRedistributeCarriesSurplus(t *testing.T) {
	entries := weekEntries(t, testToday, 2100, 2100, 2100, 1900, 1900, 1900, 1900)

	r := Redistribute(entries, 1900, "2024-01-03", testToday)

	want := []int{-200, -200, -200}
	if len(r.Deficits) != len(want) {
		t.Fatalf("deficits = %v, want %v", r.Deficits, want)
	}
	for i := range want {
		if r.Deficits[i] != want[i] {
			t.Fatalf("deficits = %v, want %v", r.Deficits, want)
		}
	}
	if r.TotalDifference != -600 {
		t.Errorf("TotalDifference = %d, want -600", r.TotalDifference)
	}
	if len(r.OnOrAfterSelected) != 4 {
		t.Errorf("onOrAfter = %v, want 4 dates", r.OnOrAfterSelected)
	}
	if r.SpreadPerDay != -150 {
		t.Errorf("SpreadPerDay = %v, want -150", r.SpreadPerDay)
	}
	if r.EffectiveGoal != 1750 {
		t.Errorf("EffectiveGoal = %v, want 1750", r.EffectiveGoal)
	}
}

func TestRedistributeEmptyBeforeKeepsGoal(t *testing.T) {
	entries := weekEntries(t, testToday, 500, 3000, 100)
	r := Redistribute(entries, 1900, WeekStart(testToday), testToday)
	if len(r.Before) != 0 {
		t.Fatalf("before = %v, want none", r.Before)
	}
	if r.EffectiveGoal != 1900 {
		t.Errorf("EffectiveGoal = %v, want 1900", r.EffectiveGoal)
	}
}

func TestRedistributeConservation(t *testing.T) {
	entries := weekEntries(t, testToday, 1200, 2500, 1950, 800, 2222)
	for _, selected := range WeekDates(testToday) {
		r := Redistribute(entries, 1900, selected, testToday)
		n := float64(len(r.OnOrAfterSelected))
		got := (r.EffectiveGoal - float64(r.DailyGoal)) * n
		if math.Abs(got-float64(r.TotalDifference)) > 1e-9 {
			t.Errorf("%s: redistributed %v, want %d", selected, got, r.TotalDifference)
		}
	}
}

func TestRedistributeFutureSelectionGuardsDivision(t *testing.T) {
	// Today is Tuesday; a selected Thursday has nothing on or after it
	// that is not in the future.
	today := "2024-01-02"
	entries := weekEntries(t, today, 1000, 1000, 1000)
	r := Redistribute(entries, 1900, "2024-01-04", today)
	if len(r.OnOrAfterSelected) != 0 {
		t.Fatalf("onOrAfter = %v, want none", r.OnOrAfterSelected)
	}
	if r.SpreadPerDay != 0 || r.EffectiveGoal != 1900 {
		t.Errorf("spread = %v, effective = %v; want 0 and 1900", r.SpreadPerDay, r.EffectiveGoal)
	}
}

func TestRedistributeUsesCurrentWeekForOldDates(t *testing.T) {
	entries := weekEntries(t, testToday, 3000, 3000)
	r := Redistribute(entries, 1900, "2023-11-15", testToday)
	if len(r.Before) != 0 {
		t.Errorf("before = %v, want none for a date in an earlier week", r.Before)
	}
	if len(r.OnOrAfterSelected) != 7 {
		t.Errorf("onOrAfter = %d dates, want the whole current week", len(r.OnOrAfterSelected))
	}
	if r.EffectiveGoal != 1900 {
		t.Errorf("EffectiveGoal = %v, want 1900", r.EffectiveGoal)
	}
}

func TestDayProgressFor(t *testing.T) {
	entries := weekEntries(t, testToday, 2100, 2100, 2100, 1000)
	goals := model.NewGoalConfig(1900)

	p := DayProgressFor(entries, goals, "2024-01-03", testToday)
	if p.EffectiveGoal != 1750 {
		t.Fatalf("EffectiveGoal = %v, want 1750", p.EffectiveGoal)
	}
	if p.Consumed.Calories != 1000 {
		t.Errorf("consumed = %d, want 1000", p.Consumed.Calories)
	}
	if p.Remaining != 750 {
		t.Errorf("remaining = %v, want 750", p.Remaining)
	}
	if math.Abs(p.Percent-1000.0/1750*100) > 1e-9 {
		t.Errorf("percent = %v", p.Percent)
	}

	over := DayProgressFor(entries, goals, "2024-01-01", testToday)
	if over.Remaining != 0 || over.Percent != 100 {
		t.Errorf("over-goal day: remaining = %v percent = %v, want 0 and 100", over.Remaining, over.Percent)
	}
}

func TestWeekProgressFor(t *testing.T) {
	entries := weekEntries(t, testToday, 2000, 2000, 2000)
	entries = append(entries, entry("2023-12-30", 5000))

	w := WeekProgressFor(entries, model.NewGoalConfig(1900), testToday)
	if w.Consumed != 6000 {
		t.Errorf("consumed = %d, want 6000", w.Consumed)
	}
	if w.WeeklyGoal != 13300 || w.Remaining != 7300 {
		t.Errorf("goal = %d remaining = %d", w.WeeklyGoal, w.Remaining)
	}
	if len(w.Days) != 7 {
		t.Errorf("days = %d, want 7", len(w.Days))
	}
}

func TestStepDateClamp(t *testing.T) {
	if got, ok := StepDate(testToday, 1, testToday); ok || got != testToday {
		t.Errorf("stepping past today = %s, %v", got, ok)
	}
	if got, ok := StepDate("2023-12-31", -1, testToday); ok || got != "2023-12-31" {
		t.Errorf("stepping before week start = %s, %v", got, ok)
	}
	if got, ok := StepDate("2024-01-03", -1, testToday); !ok || got != "2024-01-02" {
		t.Errorf("step back = %s, %v", got, ok)
	}
}

func TestCanSelect(t *testing.T) {
	if !CanSelect("2023-05-01", testToday) {
		t.Error("past dates should be selectable")
	}
	if CanSelect("2024-01-07", testToday) {
		t.Error("future dates should not be selectable")
	}
	if CanSelect("yesterday", testToday) {
		t.Error("invalid dates should not be selectable")
	}
}
