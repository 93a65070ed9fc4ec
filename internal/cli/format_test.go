package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/caltrack/internal/model"
)

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		999:     "999",
		1900:    "1,900",
		1234567: "1,234,567",
		-13300:  "-13,300",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatKcal(t *testing.T) {
	if got := FormatKcal(1866.67); got != "1,867 kcal" {
		t.Errorf("FormatKcal = %q", got)
	}
	if got := FormatKcal(1750); got != "1,750 kcal" {
		t.Errorf("FormatKcal = %q", got)
	}
}

func TestFormatDateLabel(t *testing.T) {
	today := "2024-01-06"
	if got := FormatDateLabel(today, today); got != "Today" {
		t.Errorf("got %q", got)
	}
	if got := FormatDateLabel("2024-01-05", today); got != "Yesterday" {
		t.Errorf("got %q", got)
	}
	if got := FormatDateLabel("2024-01-03", today); got != "Wed, Jan 3" {
		t.Errorf("got %q", got)
	}
}

func TestFormatTrend(t *testing.T) {
	got := FormatTrend(model.Trend{Value: 100, Percent: 5})
	if got != "+100 kcal/day (+5%)" {
		t.Errorf("got %q", got)
	}
	got = FormatTrend(model.Trend{Value: -40})
	if got != "-40 kcal/day" {
		t.Errorf("got %q", got)
	}
}

func TestRenderTableAlignsStyledCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Meal", "kcal"},
		Rows: [][]string{
			{"Lunch", "780"},
			{"---"},
			{"Total", "1,900"},
		},
	})
	for _, want := range []string{"Meal", "Lunch", "1,900", "├"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderWeeklyBars(t *testing.T) {
	out := RenderWeeklyBars([]model.GraphBar{
		{Label: "Fri 5", Calories: 1000},
		{Label: "Sat 6", Calories: 2500, Over: true},
	}, 1900, 20)
	if !strings.Contains(out, "Sat 6") || !strings.Contains(out, "2,500") || !strings.Contains(out, "1,900 kcal") {
		t.Errorf("unexpected chart:\n%s", out)
	}
}
