package model

import (
	"fmt"
	"time"
)

// DateLayout is the YYYY-MM-DD form used for every date key. Strings in this
// layout sort chronologically, so plain string comparison orders dates.
const DateLayout = "2006-01-02"

// FormatDate returns the local calendar date of t.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days. An unparseable date
// is returned unchanged.
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// Today returns the local calendar date of now.
func Today(now time.Time) string {
	return FormatDate(now)
}
