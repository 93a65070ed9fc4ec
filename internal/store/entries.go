package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/theirongolddev/caltrack/internal/model"
)

// Keys under which tracker state is persisted.
const (
	KeyEntries    = "calorieEntries"
	KeyDailyGoal  = "dailyCalorieGoal"
	KeyWeeklyGoal = "weeklyCalorieGoal"
)

// EntryStore reads and writes the entry list and goals. It does no merging:
// every save replaces the stored value wholesale.
type EntryStore struct {
	kv       KV
	defaults model.GoalConfig
}

// NewEntryStore wraps kv. Absent goal keys read back as defaults.
func NewEntryStore(kv KV, defaults model.GoalConfig) *EntryStore {
	return &EntryStore{kv: kv, defaults: defaults}
}

// LoadEntries returns the stored entries, or an empty list on first run.
// A stored value that is not a JSON entry array is an error.
func (s *EntryStore) LoadEntries() ([]model.Entry, error) {
	raw, ok, err := s.kv.Get(KeyEntries)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Entry{}, nil
	}

	var entries []model.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", KeyEntries, err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

// SaveEntries replaces the stored entry list.
func (s *EntryStore) SaveEntries(entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	return s.kv.Set(KeyEntries, string(data))
}

// LoadGoals returns the stored goals. Each absent key falls back to its
// default independently.
func (s *EntryStore) LoadGoals() (model.GoalConfig, error) {
	daily, err := s.loadInt(KeyDailyGoal, s.defaults.DailyCalorieGoal)
	if err != nil {
		return model.GoalConfig{}, err
	}
	weekly, err := s.loadInt(KeyWeeklyGoal, s.defaults.WeeklyCalorieGoal)
	if err != nil {
		return model.GoalConfig{}, err
	}
	return model.GoalConfig{DailyCalorieGoal: daily, WeeklyCalorieGoal: weekly}, nil
}

// SaveGoals stores both goals as decimal strings.
func (s *EntryStore) SaveGoals(g model.GoalConfig) error {
	pairs := map[string]string{
		KeyDailyGoal:  strconv.Itoa(g.DailyCalorieGoal),
		KeyWeeklyGoal: strconv.Itoa(g.WeeklyCalorieGoal),
	}
	if b, ok := s.kv.(batchSetter); ok {
		return b.SetAll(pairs)
	}
	for _, k := range []string{KeyDailyGoal, KeyWeeklyGoal} {
		if err := s.kv.Set(k, pairs[k]); err != nil {
			return err
		}
	}
	return nil
}

func (s *EntryStore) loadInt(key string, def int) (int, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}
