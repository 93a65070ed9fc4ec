package daemon

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/store"
)

func newTestService(t *testing.T, now *time.Time, entries ...model.Entry) (*Service, *store.EntryStore) {
	t.Helper()
	es := store.NewEntryStore(store.NewMemory(), model.DefaultGoals())
	if len(entries) > 0 {
		if err := es.SaveEntries(entries); err != nil {
			t.Fatal(err)
		}
	}
	s := New(es, Config{
		Interval:     10 * time.Second,
		EventsBuffer: 10,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:          func() time.Time { return *now },
	})
	return s, es
}

func entryOn(id int64, date string, cal int) model.Entry {
	return model.Entry{ID: id, Date: date, Calories: cal, MealType: model.Lunch}
}

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{Entries: 2, Calories: 900, WeekCalories: 5000, DailyGoal: 1900}
	curr := Snapshot{Entries: 3, Calories: 1450, WeekCalories: 5550, DailyGoal: 1900}

	delta := diffSnapshots(prev, curr)
	if delta.Entries != 1 {
		t.Fatalf("Entries delta = %d, want 1", delta.Entries)
	}
	if delta.Calories != 550 {
		t.Fatalf("Calories delta = %d, want 550", delta.Calories)
	}
	if delta.WeekCalories != 550 {
		t.Fatalf("WeekCalories delta = %d, want 550", delta.WeekCalories)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots should give a zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	now := time.Date(2024, 1, 6, 9, 0, 0, 0, time.Local)
	s, _ := newTestService(t, &now)
	s.cfg.EventsBuffer = 2

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPollPublishesProgressAndRollover(t *testing.T) {
	now := time.Date(2024, 1, 6, 9, 0, 0, 0, time.Local)
	s, es := newTestService(t, &now, entryOn(1, "2024-01-06", 800))

	s.pollOnce()
	s.pollOnce() // unchanged, no event

	if err := es.SaveEntries([]model.Entry{
		entryOn(1, "2024-01-06", 800),
		entryOn(2, "2024-01-06", 400),
	}); err != nil {
		t.Fatal(err)
	}
	s.pollOnce()

	now = now.AddDate(0, 0, 1)
	s.pollOnce()

	s.mu.RLock()
	events := append([]Event(nil), s.events...)
	polls := s.pollCount
	s.mu.RUnlock()

	if polls != 4 {
		t.Fatalf("pollCount = %d, want 4", polls)
	}
	wantTypes := []string{EventSnapshot, EventProgress, EventRollover}
	if len(events) != len(wantTypes) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(wantTypes), events)
	}
	for i, typ := range wantTypes {
		if events[i].Type != typ {
			t.Errorf("event %d type = %s, want %s", i, events[i].Type, typ)
		}
	}
	if d := events[1].Delta; d.Calories != 400 || d.Entries != 1 {
		t.Errorf("progress delta = %+v", d)
	}
	if got := events[2].Snapshot.Date; got != "2024-01-07" {
		t.Errorf("rollover date = %s", got)
	}
}

func TestTodayEndpoint(t *testing.T) {
	now := time.Date(2024, 1, 6, 9, 0, 0, 0, time.Local)
	s, _ := newTestService(t, &now, entryOn(1, "2024-01-06", 800), entryOn(2, "2024-01-05", 300))
	s.pollOnce()

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/today")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Date != "2024-01-06" || snap.Calories != 800 || snap.Entries != 1 {
		t.Errorf("today = %+v", snap)
	}
	if snap.WeekCalories != 1100 {
		t.Errorf("week calories = %d, want 1100", snap.WeekCalories)
	}
	if snap.WeeklyGoal != 13300 {
		t.Errorf("weekly goal = %d, want 13300", snap.WeeklyGoal)
	}
	if snap.Streak != 2 {
		t.Errorf("streak = %d, want 2", snap.Streak)
	}
}
