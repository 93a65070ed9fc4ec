package tracker

import (
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/caltrack/internal/model"
)

func TestSetCaloriesDerivesMacros(t *testing.T) {
	f := NewAddForm("2024-01-06")
	f.SetCalories("2000")
	if f.Protein != "150" || f.Carbs != "200" || f.Fats != "67" {
		t.Errorf("macros = %s/%s/%s, want 150/200/67", f.Protein, f.Carbs, f.Fats)
	}

	f.SetCalories("")
	if f.Protein != "" || f.Carbs != "" || f.Fats != "" {
		t.Error("clearing calories on the add form should clear macros")
	}
}

func TestEditFormKeepsMacrosWhenCaloriesCleared(t *testing.T) {
	f := NewEditForm(model.Entry{Date: "2024-01-06", Calories: 780, Protein: 50, Carbs: 100, Fats: 20, MealType: model.Lunch})
	f.SetCalories("")
	if f.Protein != "50" || f.Carbs != "100" || f.Fats != "20" {
		t.Errorf("macros = %s/%s/%s, want unchanged", f.Protein, f.Carbs, f.Fats)
	}
}

func TestSetMacroRecomputesCalories(t *testing.T) {
	f := NewEditForm(model.Entry{Date: "2024-01-06", Calories: 1, Protein: 0, Carbs: 100, Fats: 20, MealType: model.Lunch})
	if err := f.SetMacro(FieldProtein, "50"); err != nil {
		t.Fatal(err)
	}
	if f.Calories != "780" {
		t.Errorf("calories = %s, want 780", f.Calories)
	}
}

func TestSetMacroTreatsGarbageAsZero(t *testing.T) {
	f := NewAddForm("2024-01-06")
	f.Calories = "300"
	_ = f.SetMacro(FieldProtein, "abc")
	if f.Calories != "300" {
		t.Errorf("calories = %s; a zero result should leave calories alone", f.Calories)
	}
	_ = f.SetMacro(FieldFats, "10")
	if f.Calories != "90" {
		t.Errorf("calories = %s, want 90", f.Calories)
	}
	if err := f.SetMacro(FieldCalories, "1"); err == nil {
		t.Error("calories is not a macro field")
	}
}

func TestBuildValidatesAddForm(t *testing.T) {
	f := NewAddForm("2024-01-06")
	f.Calories = "500"

	var ve *ValidationError
	if _, err := f.Build(1, fixedNow); !errors.As(err, &ve) || ve.Msg != msgMissingFields {
		t.Fatalf("Build with empty macros = %v", err)
	}

	f.SetCalories("500")
	f.Protein = "-1"
	if _, err := f.Build(1, fixedNow); !errors.As(err, &ve) || ve.Field != FieldProtein {
		t.Fatalf("Build with negative protein = %v", err)
	}

	f.SetCalories("500")
	f.MealType = model.Dinner
	e, err := f.Build(42, fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != 42 || e.Date != "2024-01-06" || e.Calories != 500 || e.MealType != model.Dinner {
		t.Errorf("entry = %+v", e)
	}
	if !e.Timestamp.Equal(fixedNow) {
		t.Errorf("timestamp = %v", e.Timestamp)
	}
}

func TestApplyRejectsMismatch(t *testing.T) {
	orig := model.Entry{ID: 7, Date: "2024-01-05", Timestamp: fixedNow, Calories: 780, Protein: 50, Carbs: 100, Fats: 20, MealType: model.Lunch}

	f := NewEditForm(orig)
	f.Calories = "900"
	_, err := f.Apply(orig)
	if err == nil || !strings.Contains(err.Error(), "expected 780 calories") {
		t.Fatalf("Apply = %v, want mismatch error", err)
	}

	f.Calories = "781"
	f.MealType = model.Snack
	e, err := f.Apply(orig)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != 7 || e.Date != "2024-01-05" || e.Calories != 781 || e.MealType != model.Snack {
		t.Errorf("entry = %+v", e)
	}
}

func TestApplyRejectsRoundedCalorieEdit(t *testing.T) {
	// 2000 kcal splits into 150/200/67, which is 2003 kcal: outside the
	// edit tolerance.
	orig := model.Entry{ID: 7, Date: "2024-01-05", Calories: 780, Protein: 50, Carbs: 100, Fats: 20, MealType: model.Lunch}
	f := NewEditForm(orig)
	f.SetCalories("2000")
	if _, err := f.Apply(orig); err == nil {
		t.Error("expected a mismatch error")
	}
}

func TestSetField(t *testing.T) {
	f := NewAddForm("2024-01-06")
	if err := f.SetField(FieldMeal, "Dinner"); err != nil || f.MealType != model.Dinner {
		t.Errorf("meal = %s, err %v", f.MealType, err)
	}
	if err := f.SetField(FieldMeal, "brunch"); err == nil {
		t.Error("expected an error for an unknown meal")
	}
	if err := f.SetField(FieldCalories, "400"); err != nil || f.Carbs != "40" {
		t.Errorf("carbs = %s, err %v", f.Carbs, err)
	}
}
