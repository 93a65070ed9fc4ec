package store

import (
	"testing"
	"time"

	"github.com/theirongolddev/caltrack/internal/model"
)

func TestEntryStoreFirstRun(t *testing.T) {
	s := NewEntryStore(NewMemory(), model.DefaultGoals())

	entries, err := s.LoadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %v, want empty non-nil list", entries)
	}

	g, err := s.LoadGoals()
	if err != nil {
		t.Fatal(err)
	}
	if g.DailyCalorieGoal != 1900 || g.WeeklyCalorieGoal != 13300 {
		t.Errorf("goals = %+v, want 1900/13300", g)
	}
}

func TestEntryStoreRoundTrip(t *testing.T) {
	kv := NewMemory()
	s := NewEntryStore(kv, model.DefaultGoals())

	want := []model.Entry{{
		ID:        1704110400000,
		Date:      "2024-01-01",
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Calories:  780,
		Protein:   50,
		Carbs:     100,
		Fats:      20,
		MealType:  model.Dinner,
	}}
	if err := s.SaveEntries(want); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveGoals(model.NewGoalConfig(2000)); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("entries = %+v, want 1", got)
	}
	e := got[0]
	if e.ID != want[0].ID || e.Date != want[0].Date || e.Calories != 780 || e.Fats != 20 || e.MealType != model.Dinner {
		t.Errorf("entry = %+v, want %+v", e, want[0])
	}
	if !e.Timestamp.Equal(want[0].Timestamp) {
		t.Errorf("timestamp = %v, want %v", e.Timestamp, want[0].Timestamp)
	}

	if v, _, _ := kv.Get(KeyDailyGoal); v != "2000" {
		t.Errorf("stored daily goal = %q, want 2000", v)
	}
	if v, _, _ := kv.Get(KeyWeeklyGoal); v != "14000" {
		t.Errorf("stored weekly goal = %q, want 14000", v)
	}
}

func TestEntryStoreReadsBrowserFormat(t *testing.T) {
	kv := NewMemory()
	_ = kv.Set(KeyEntries, `[{"id":1704110400000,"date":"2024-01-01","timestamp":"2024-01-01T12:00:00.000Z","calories":2000,"protein":150,"carbs":200,"fats":67,"mealType":"lunch"}]`)

	entries, err := NewEntryStore(kv, model.DefaultGoals()).LoadEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].MealType != model.Lunch || entries[0].Timestamp.Hour() != 12 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestEntryStoreMalformed(t *testing.T) {
	kv := NewMemory()
	s := NewEntryStore(kv, model.DefaultGoals())

	_ = kv.Set(KeyEntries, `{not json`)
	if _, err := s.LoadEntries(); err == nil {
		t.Error("expected an error for malformed entries")
	}

	_ = kv.Set(KeyDailyGoal, "lots")
	if _, err := s.LoadGoals(); err == nil {
		t.Error("expected an error for a non-numeric goal")
	}
}

func TestEntryStoreGoalKeysDefaultIndependently(t *testing.T) {
	kv := NewMemory()
	_ = kv.Set(KeyDailyGoal, "2200")

	g, err := NewEntryStore(kv, model.DefaultGoals()).LoadGoals()
	if err != nil {
		t.Fatal(err)
	}
	if g.DailyCalorieGoal != 2200 || g.WeeklyCalorieGoal != 13300 {
		t.Errorf("goals = %+v, want 2200/13300", g)
	}
}

func TestEntryStoreOnSQLite(t *testing.T) {
	db, _ := openTestDB(t)
	s := NewEntryStore(db, model.DefaultGoals())

	if err := s.SaveGoals(model.NewGoalConfig(1500)); err != nil {
		t.Fatal(err)
	}
	g, err := s.LoadGoals()
	if err != nil {
		t.Fatal(err)
	}
	if g != model.NewGoalConfig(1500) {
		t.Errorf("goals = %+v", g)
	}
}
