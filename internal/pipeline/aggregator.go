// Package pipeline derives totals, goal redistribution, trends and calendar
// classes from the entry list. Every function is pure: same inputs, same
// result, no I/O.
package pipeline

import (
	"math"
	"sort"

	"github.com/theirongolddev/caltrack/internal/model"
)

// TotalsForDate sums every entry whose date equals date exactly.
func TotalsForDate(entries []model.Entry, date string) model.Totals {
	var t model.Totals
	for _, e := range entries {
		if e.Date == date {
			t.Add(e)
		}
	}
	return t
}

// TotalsForRange sums every entry whose date is one of dates.
func TotalsForRange(entries []model.Entry, dates []string) model.Totals {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}

	var t model.Totals
	for _, e := range entries {
		if _, ok := set[e.Date]; ok {
			t.Add(e)
		}
	}
	return t
}

// AggregateDays groups entries by date.
func AggregateDays(entries []model.Entry) map[string]model.Totals {
	days := make(map[string]model.Totals)
	for _, e := range entries {
		t := days[e.Date]
		t.Add(e)
		days[e.Date] = t
	}
	return days
}

// DailySeries returns one row per calendar day from..to inclusive, oldest
// first. Days with no entries are zero-filled.
func DailySeries(entries []model.Entry, from, to string) []model.DayTotals {
	if from > to {
		return nil
	}
	if _, err := model.ParseDate(from); err != nil {
		return nil
	}
	days := AggregateDays(entries)

	var out []model.DayTotals
	for d := from; d <= to; d = model.AddDays(d, 1) {
		out = append(out, model.DayTotals{Date: d, Totals: days[d]})
	}
	return out
}

// EntriesForDate returns the entries logged on date, newest first. Entries
// with equal timestamps fall back to id descending.
func EntriesForDate(entries []model.Entry, date string) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders entries by timestamp descending, then id descending.
func SortNewestFirst(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.ID > b.ID
	})
}

// roundHalfUp rounds to the nearest integer with halves going toward
// positive infinity, so -2.5 rounds to -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
