// Package tracker owns the application state: the entry list and the goal
// config. Every change goes through Update, which applies the change in
// memory and then persists it.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/store"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("entry not found")

// State is the mutable application state handed to Update callbacks.
type State struct {
	Entries []model.Entry
	Goals   model.GoalConfig
}

func (s State) clone() State {
	out := State{Goals: s.Goals, Entries: make([]model.Entry, len(s.Entries))}
	copy(out.Entries, s.Entries)
	return out
}

// Tracker is the single owner of State.
type Tracker struct {
	mu         sync.Mutex
	store      *store.EntryStore
	log        *slog.Logger
	now        func() time.Time
	state      State
	persistErr error
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New loads the entry list and goals from s. Unreadable stored state is an
// error; absent state starts empty with default goals.
func New(s *store.EntryStore, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store: s,
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(t)
	}

	entries, err := s.LoadEntries()
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	goals, err := s.LoadGoals()
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	t.state = State{Entries: entries, Goals: goals}
	t.log.Debug("state loaded", slog.Int("entries", len(entries)), slog.Int("daily_goal", goals.DailyCalorieGoal))
	return t, nil
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time { return t.now() }

// Today returns the current local date.
func (t *Tracker) Today() string { return model.Today(t.now()) }

// Entries returns a copy of every entry.
func (t *Tracker) Entries() []model.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.clone().Entries
}

// Goals returns the current goal config.
func (t *Tracker) Goals() model.GoalConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Goals
}

// Entry looks up an entry by id.
func (t *Tracker) Entry(id int64) (model.Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.state.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return model.Entry{}, false
}

// LastPersistError returns the error from the most recent save, or nil if it
// succeeded.
func (t *Tracker) LastPersistError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.persistErr
}

// Update runs fn against a working copy of the state. If fn fails, or leaves
// two entries sharing an id, nothing changes and the error is returned.
// Otherwise the copy becomes the new state and is persisted. Save failures
// are logged and kept for LastPersistError; they are not returned, and the
// in-memory state stays updated.
func (t *Tracker) Update(fn func(*State) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.state.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := checkUniqueIDs(next.Entries); err != nil {
		return err
	}

	prev := t.state
	t.state = next
	t.persist(prev)
	return nil
}

func (t *Tracker) persist(prev State) {
	t.persistErr = nil
	if err := t.store.SaveEntries(t.state.Entries); err != nil {
		t.persistErr = fmt.Errorf("saving entries: %w", err)
		t.log.Warn("persist failed", slog.String("key", store.KeyEntries), slog.String("error", err.Error()))
	}
	if prev.Goals != t.state.Goals {
		if err := t.store.SaveGoals(t.state.Goals); err != nil {
			t.persistErr = fmt.Errorf("saving goals: %w", err)
			t.log.Warn("persist failed", slog.String("key", store.KeyDailyGoal), slog.String("error", err.Error()))
		}
	}
}

func checkUniqueIDs(entries []model.Entry) error {
	seen := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("duplicate entry id %d", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// NextID returns the creation-time id for a new entry, moved past the
// largest existing id if another entry already holds it.
func (t *Tracker) NextID() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.now().UnixMilli()
	for _, e := range t.state.Entries {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	return id
}

// AddEntry appends a new entry.
func (t *Tracker) AddEntry(e model.Entry) error {
	if err := ValidateEntry(e); err != nil {
		return err
	}
	return t.Update(func(s *State) error {
		s.Entries = append(s.Entries, e)
		return nil
	})
}

// ReplaceEntry swaps the entry with the same id for e.
func (t *Tracker) ReplaceEntry(e model.Entry) error {
	if err := ValidateEntry(e); err != nil {
		return err
	}
	return t.Update(func(s *State) error {
		for i := range s.Entries {
			if s.Entries[i].ID == e.ID {
				s.Entries[i] = e
				return nil
			}
		}
		return fmt.Errorf("entry %d: %w", e.ID, ErrNotFound)
	})
}

// DeleteEntry removes the entry with the given id.
func (t *Tracker) DeleteEntry(id int64) error {
	return t.Update(func(s *State) error {
		for i := range s.Entries {
			if s.Entries[i].ID == id {
				s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("entry %d: %w", id, ErrNotFound)
	})
}

// SetDailyGoal changes the daily goal; the weekly goal follows as 7x.
func (t *Tracker) SetDailyGoal(daily int) error {
	if daily <= 0 {
		return &ValidationError{Field: FieldGoal, Msg: "daily goal must be a positive number"}
	}
	return t.Update(func(s *State) error {
		s.Goals = model.NewGoalConfig(daily)
		return nil
	})
}

// ValidateEntry checks the stored-entry invariants: a valid date and meal
// type and no negative amounts.
func ValidateEntry(e model.Entry) error {
	if _, err := model.ParseDate(e.Date); err != nil {
		return &ValidationError{Field: FieldDate, Msg: err.Error()}
	}
	if !e.MealType.Valid() {
		return &ValidationError{Field: FieldMeal, Msg: fmt.Sprintf("unknown meal type %q", e.MealType)}
	}
	if e.Calories < 0 || e.Protein < 0 || e.Carbs < 0 || e.Fats < 0 {
		return &ValidationError{Field: FieldCalories, Msg: msgInvalidNumbers}
	}
	return nil
}
