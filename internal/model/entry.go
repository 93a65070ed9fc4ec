// Package model defines the entry, goal and derived-result types shared by
// the tracker, the pipeline and the presentation layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// MealType tags an entry with the meal it belongs to.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists every meal type in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// ParseMealType accepts a meal type name, case-insensitively.
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m, nil
	}
	return "", fmt.Errorf("unknown meal type %q (want breakfast, lunch, dinner or snack)", s)
}

// Valid reports whether m is one of the four known meal types.
func (m MealType) Valid() bool {
	switch m {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// Title returns the capitalized meal name for display.
func (m MealType) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Entry is one logged food record. Entries are replaced wholesale on edit;
// ID is the creation time in milliseconds and never changes.
type Entry struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	Calories  int       `json:"calories"`
	Protein   int       `json:"protein"`
	Carbs     int       `json:"carbs"`
	Fats      int       `json:"fats"`
	MealType  MealType  `json:"mealType"`
}

// Totals sums calories and macros over a set of entries.
type Totals struct {
	Calories int
	Protein  int
	Carbs    int
	Fats     int
}

// Add accumulates a single entry.
func (t *Totals) Add(e Entry) {
	t.Calories += e.Calories
	t.Protein += e.Protein
	t.Carbs += e.Carbs
	t.Fats += e.Fats
}

// Macros is a protein/carbs/fats split in grams.
type Macros struct {
	Protein int
	Carbs   int
	Fats    int
}

// DefaultDailyGoal is the daily calorie goal used on first run.
const DefaultDailyGoal = 1900

// GoalConfig holds the calorie targets. WeeklyCalorieGoal is always derived
// from DailyCalorieGoal.
type GoalConfig struct {
	DailyCalorieGoal  int
	WeeklyCalorieGoal int
}

// NewGoalConfig derives the weekly goal from a daily goal.
func NewGoalConfig(daily int) GoalConfig {
	return GoalConfig{DailyCalorieGoal: daily, WeeklyCalorieGoal: daily * 7}
}

// DefaultGoals returns the first-run goals (1900/13300).
func DefaultGoals() GoalConfig {
	return NewGoalConfig(DefaultDailyGoal)
}
