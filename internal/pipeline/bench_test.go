package pipeline

import (
	"testing"

	"github.com/theirongolddev/caltrack/internal/model"
)

// A year of history with four entries a day.
func benchEntries() []model.Entry {
	var out []model.Entry
	for i := 0; i < 365; i++ {
		d := model.AddDays("2024-12-31", -i)
		for j := 0; j < 4; j++ {
			out = append(out, entry(d, 300+j*150))
		}
	}
	return out
}

func BenchmarkAnalyze(b *testing.B) {
	entries := benchEntries()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Analyze(entries, "2024-12-31")
	}
}

func BenchmarkDayProgress(b *testing.B) {
	entries := benchEntries()
	goals := model.DefaultGoals()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DayProgressFor(entries, goals, "2024-12-30", "2024-12-31")
	}
}

func BenchmarkBuildMonth(b *testing.B) {
	entries := benchEntries()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildMonth(entries, 1900, 2024, 12, "2024-12-31", "2024-12-31")
	}
}
