package pipeline

import (
	"sort"

	"github.com/theirongolddev/caltrack/internal/model"
)

const (
	analyticsWindowDays = 30
	minTrendDays        = 14
	trendGroupDays      = 7
)

// Analyze computes per-day averages over the last 30 calendar days ending
// today and, when at least 14 of those days have entries, the change in mean
// daily calories between the last 7 tracked days and the 7 tracked days
// before them. Tracked days need not be contiguous.
func Analyze(entries []model.Entry, today string) model.Analytics {
	cutoff := model.AddDays(today, -(analyticsWindowDays - 1))

	var recent []model.Entry
	for _, e := range entries {
		if e.Date >= cutoff {
			recent = append(recent, e)
		}
	}

	days := AggregateDays(recent)
	n := len(days)
	if n == 0 {
		return model.Analytics{}
	}

	var sum model.Totals
	dates := make([]string, 0, n)
	for d, t := range days {
		dates = append(dates, d)
		sum.Calories += t.Calories
		sum.Protein += t.Protein
		sum.Carbs += t.Carbs
		sum.Fats += t.Fats
	}
	sort.Strings(dates)

	a := model.Analytics{
		DaysTracked: n,
		Averages: model.Totals{
			Calories: int(roundHalfUp(float64(sum.Calories) / float64(n))),
			Protein:  int(roundHalfUp(float64(sum.Protein) / float64(n))),
			Carbs:    int(roundHalfUp(float64(sum.Carbs) / float64(n))),
			Fats:     int(roundHalfUp(float64(sum.Fats) / float64(n))),
		},
	}
	if n < minTrendDays {
		return a
	}

	last := groupAverage(days, dates[n-trendGroupDays:])
	prev := groupAverage(days, dates[n-2*trendGroupDays:n-trendGroupDays])
	diff := last - prev

	tr := &model.Trend{
		LastAverage:     last,
		PreviousAverage: prev,
		Value:           int(roundHalfUp(diff)),
	}
	if prev > 0 {
		tr.Percent = int(roundHalfUp(diff / prev * 100))
	}
	switch {
	case tr.Value > 0:
		tr.Direction = model.TrendIncreasing
	case tr.Value < 0:
		tr.Direction = model.TrendDecreasing
	default:
		tr.Direction = model.TrendStable
	}
	a.Trend = tr
	return a
}

// groupAverage is the mean daily calories over a group, always divided by 7.
func groupAverage(days map[string]model.Totals, dates []string) float64 {
	var sum int
	for _, d := range dates {
		sum += days[d].Calories
	}
	return float64(sum) / trendGroupDays
}
