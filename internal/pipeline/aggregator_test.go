package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/caltrack/internal/model"
)

func TestTotalsForDate(t *testing.T) {
	entries := []model.Entry{
		{Date: "2024-01-01", Calories: 2000, Protein: 150, Carbs: 200, Fats: 67},
		{Date: "2024-01-01", Calories: 300, Protein: 10, Carbs: 20, Fats: 5},
		{Date: "2024-01-02", Calories: 999},
	}

	got := TotalsForDate(entries, "2024-01-01")
	want := model.Totals{Calories: 2300, Protein: 160, Carbs: 220, Fats: 72}
	if got != want {
		t.Errorf("TotalsForDate = %+v, want %+v", got, want)
	}

	if got := TotalsForDate(entries, "2024-01-03"); got != (model.Totals{}) {
		t.Errorf("no matches should give zero totals, got %+v", got)
	}
}

func TestTotalsForDateSingleEntry(t *testing.T) {
	entries := []model.Entry{{Date: "2024-01-01", Calories: 2000}}
	if got := TotalsForDate(entries, "2024-01-01").Calories; got != 2000 {
		t.Errorf("calories = %d, want 2000", got)
	}
	if got := Classify(2000, 1900); got != model.Over100 {
		t.Errorf("Classify(2000, 1900) = %v, want Over100", got)
	}
}

func TestTotalsForRange(t *testing.T) {
	entries := []model.Entry{
		{Date: "2024-01-01", Calories: 100},
		{Date: "2024-01-02", Calories: 200},
		{Date: "2024-01-03", Calories: 400},
	}
	got := TotalsForRange(entries, []string{"2024-01-01", "2024-01-03", "2024-01-09"})
	if got.Calories != 500 {
		t.Errorf("calories = %d, want 500", got.Calories)
	}
	if got := TotalsForRange(entries, nil); got != (model.Totals{}) {
		t.Errorf("empty range should give zero totals, got %+v", got)
	}
}

func TestPartitionConsistency(t *testing.T) {
	entries := []model.Entry{
		entry("2024-01-01", 500), entry("2024-01-01", 700),
		entry("2024-01-03", 1200), entry("2024-02-10", 80),
		entry("2023-12-31", 2500),
	}

	want := 0
	for _, e := range entries {
		want += e.Calories
	}

	got := 0
	for date := range AggregateDays(entries) {
		got += TotalsForDate(entries, date).Calories
	}
	if got != want {
		t.Errorf("per-date sum = %d, want %d", got, want)
	}
}

func TestDailySeriesZeroFills(t *testing.T) {
	entries := []model.Entry{entry("2024-01-02", 300)}
	series := DailySeries(entries, "2023-12-31", "2024-01-03")
	if len(series) != 4 {
		t.Fatalf("len = %d, want 4", len(series))
	}
	if series[0].Date != "2023-12-31" || series[3].Date != "2024-01-03" {
		t.Errorf("bounds = %s..%s", series[0].Date, series[3].Date)
	}
	if series[2].Calories != 300 || series[1].Calories != 0 {
		t.Errorf("unexpected totals: %+v", series)
	}
	if DailySeries(entries, "2024-01-05", "2024-01-01") != nil {
		t.Error("reversed range should be empty")
	}
}

func TestEntriesForDateNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	entries := []model.Entry{
		{ID: 1, Date: "2024-01-01", Timestamp: base},
		{ID: 2, Date: "2024-01-01", Timestamp: base.Add(time.Hour)},
		{ID: 3, Date: "2024-01-02", Timestamp: base.Add(2 * time.Hour)},
		{ID: 4, Date: "2024-01-01", Timestamp: base},
	}

	got := EntriesForDate(entries, "2024-01-01")
	var ids []int64
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	want := []int64{2, 4, 1}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]float64{
		66.67: 67,
		2.5:   3,
		-2.5:  -2,
		-2.6:  -3,
		0.49:  0,
	}
	for in, want := range cases {
		if got := roundHalfUp(in); got != want {
			t.Errorf("roundHalfUp(%v) = %v, want %v", in, got, want)
		}
	}
}
