package pipeline

import (
	"testing"

	"github.com/theirongolddev/caltrack/internal/model"
)

func TestComputeStreaks(t *testing.T) {
	entries := []model.Entry{
		entry("2024-01-06", 500),
		entry("2024-01-05", 500),
		entry("2024-01-04", 500),
		entry("2024-01-02", 500),
	}

	s := ComputeStreaks(entries, testToday)
	if s.Current != 3 {
		t.Errorf("Current = %d, want 3", s.Current)
	}
	if len(s.Last7) != 7 {
		t.Fatalf("Last7 = %d days, want 7", len(s.Last7))
	}
	if s.Last7[0].Date != "2023-12-31" || !s.Last7[6].IsToday {
		t.Errorf("row = %+v", s.Last7)
	}
	if s.Last7[0].Weekday != "Sun" {
		t.Errorf("weekday = %q, want Sun", s.Last7[0].Weekday)
	}
	if s.Last7[3].HasEntry {
		t.Error("2024-01-03 has no entries")
	}
}

func TestComputeStreaksCountsFromYesterday(t *testing.T) {
	entries := []model.Entry{entry("2024-01-05", 500), entry("2024-01-04", 500)}
	if got := ComputeStreaks(entries, testToday).Current; got != 2 {
		t.Errorf("Current = %d, want 2", got)
	}
	if got := ComputeStreaks(nil, testToday).Current; got != 0 {
		t.Errorf("Current = %d, want 0", got)
	}
}

func TestWeeklyGraph(t *testing.T) {
	entries := []model.Entry{entry("2024-01-06", 2000), entry("2024-01-05", 1900)}
	bars := WeeklyGraph(entries, 1900, testToday)
	if len(bars) != 7 {
		t.Fatalf("bars = %d, want 7", len(bars))
	}
	last := bars[6]
	if last.Label != "Sat 6" || last.Calories != 2000 || !last.Over {
		t.Errorf("last bar = %+v", last)
	}
	if bars[5].Over {
		t.Error("exactly at goal should not be over")
	}
}

func TestOnTarget(t *testing.T) {
	if !OnTarget(1520, 1900) || !OnTarget(1900, 1900) {
		t.Error("80% and 100% are on target")
	}
	if OnTarget(1519, 1900) || OnTarget(1901, 1900) {
		t.Error("outside 80-100% is not on target")
	}
}
