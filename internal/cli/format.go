// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/caltrack/internal/model"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatCalories formats a calorie count, e.g. 1900 -> "1,900 kcal".
func FormatCalories(n int) string {
	return FormatNumber(int64(n)) + " kcal"
}

// FormatKcal rounds a fractional calorie target for display.
func FormatKcal(f float64) string {
	return FormatCalories(int(math.Floor(f + 0.5)))
}

// FormatGrams formats a macro amount.
func FormatGrams(n int) string {
	return FormatNumber(int64(n)) + "g"
}

// FormatSigned formats n with an explicit sign, e.g. "+100", "-50", "0".
func FormatSigned(n int) string {
	if n > 0 {
		return "+" + FormatNumber(int64(n))
	}
	return FormatNumber(int64(n))
}

// FormatPercent formats a 0-100 percentage.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatDateLabel returns "Today", "Yesterday", or a short date such as
// "Wed, Jan 3".
func FormatDateLabel(date, today string) string {
	switch date {
	case today:
		return "Today"
	case model.AddDays(today, -1):
		return "Yesterday"
	}
	t, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2")
}

// FormatTrend describes a trend value with its direction.
func FormatTrend(tr model.Trend) string {
	s := FormatSigned(tr.Value) + " kcal/day"
	if tr.Percent != 0 {
		s += fmt.Sprintf(" (%s%%)", FormatSigned(tr.Percent))
	}
	return s
}
