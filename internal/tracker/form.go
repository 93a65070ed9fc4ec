package tracker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/pipeline"
)

// Field names an entry-form field.
type Field string

const (
	FieldDate     Field = "date"
	FieldMeal     Field = "meal"
	FieldCalories Field = "calories"
	FieldProtein  Field = "protein"
	FieldCarbs    Field = "carbs"
	FieldFats     Field = "fats"
	FieldGoal     Field = "goal"
)

const (
	msgMissingFields  = "please fill in all fields"
	msgInvalidNumbers = "please enter valid non-negative numbers for all fields"
)

// ValidationError rejects user input. The action that produced it must not
// change any state.
type ValidationError struct {
	Field Field
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// FormMode selects add or edit behavior.
type FormMode int

const (
	AddForm FormMode = iota
	EditForm
)

// EntryForm holds the raw text of an entry being added or edited and keeps
// calories and macros in step as either side changes.
type EntryForm struct {
	Mode     FormMode
	Date     string
	MealType model.MealType
	Calories string
	Protein  string
	Carbs    string
	Fats     string
}

// NewAddForm returns an empty form for date, defaulting to breakfast.
func NewAddForm(date string) *EntryForm {
	return &EntryForm{Mode: AddForm, Date: date, MealType: model.Breakfast}
}

// NewEditForm returns a form prefilled from e.
func NewEditForm(e model.Entry) *EntryForm {
	return &EntryForm{
		Mode:     EditForm,
		Date:     e.Date,
		MealType: e.MealType,
		Calories: strconv.Itoa(e.Calories),
		Protein:  strconv.Itoa(e.Protein),
		Carbs:    strconv.Itoa(e.Carbs),
		Fats:     strconv.Itoa(e.Fats),
	}
}

// SetCalories sets the calorie text and derives a 30/40/30 macro split from
// it. Clearing calories on an add form clears the macros too; an edit form
// keeps them.
func (f *EntryForm) SetCalories(v string) {
	f.Calories = v
	if strings.TrimSpace(v) == "" {
		if f.Mode == AddForm {
			f.Protein, f.Carbs, f.Fats = "", "", ""
		}
		return
	}

	m := pipeline.FromCalories(lenientInt(v))
	f.Protein = strconv.Itoa(m.Protein)
	f.Carbs = strconv.Itoa(m.Carbs)
	f.Fats = strconv.Itoa(m.Fats)
}

// SetMacro sets one macro's text and recomputes calories from all three.
// Unparseable values count as 0, and calories are left alone when the
// result is 0.
func (f *EntryForm) SetMacro(field Field, v string) error {
	switch field {
	case FieldProtein:
		f.Protein = v
	case FieldCarbs:
		f.Carbs = v
	case FieldFats:
		f.Fats = v
	default:
		return fmt.Errorf("%s is not a macro field", field)
	}

	cal := pipeline.FromMacros(lenientInt(f.Protein), lenientInt(f.Carbs), lenientInt(f.Fats))
	if cal > 0 {
		f.Calories = strconv.Itoa(cal)
	}
	return nil
}

// SetField routes a text change to the matching setter.
func (f *EntryForm) SetField(field Field, v string) error {
	switch field {
	case FieldCalories:
		f.SetCalories(v)
	case FieldProtein, FieldCarbs, FieldFats:
		return f.SetMacro(field, v)
	case FieldMeal:
		m, err := model.ParseMealType(v)
		if err != nil {
			return &ValidationError{Field: FieldMeal, Msg: err.Error()}
		}
		f.MealType = m
	case FieldDate:
		f.Date = strings.TrimSpace(v)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Build validates an add form and returns the new entry.
func (f *EntryForm) Build(id int64, now time.Time) (model.Entry, error) {
	for _, v := range []string{f.Calories, f.Protein, f.Carbs, f.Fats} {
		if strings.TrimSpace(v) == "" {
			return model.Entry{}, &ValidationError{Field: FieldCalories, Msg: msgMissingFields}
		}
	}
	cal, p, c, fat, err := f.numbers()
	if err != nil {
		return model.Entry{}, err
	}

	e := model.Entry{
		ID:        id,
		Date:      f.Date,
		Timestamp: now.UTC(),
		Calories:  cal,
		Protein:   p,
		Carbs:     c,
		Fats:      fat,
		MealType:  f.MealType,
	}
	if err := ValidateEntry(e); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

// Apply validates an edit form against orig and returns the replacement.
// Id, date and timestamp are kept; macros must account for the calories
// within 1 kcal.
func (f *EntryForm) Apply(orig model.Entry) (model.Entry, error) {
	cal, p, c, fat, err := f.numbers()
	if err != nil {
		return model.Entry{}, err
	}
	if !pipeline.MacrosMatch(cal, p, c, fat) {
		return model.Entry{}, &ValidationError{
			Field: FieldCalories,
			Msg:   fmt.Sprintf("macros don't match calories: expected %d calories from these macros", pipeline.FromMacros(p, c, fat)),
		}
	}

	e := orig
	e.Calories, e.Protein, e.Carbs, e.Fats = cal, p, c, fat
	e.MealType = f.MealType
	if err := ValidateEntry(e); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

func (f *EntryForm) numbers() (cal, protein, carbs, fats int, err error) {
	fields := []struct {
		name Field
		raw  string
		dst  *int
	}{
		{FieldCalories, f.Calories, &cal},
		{FieldProtein, f.Protein, &protein},
		{FieldCarbs, f.Carbs, &carbs},
		{FieldFats, f.Fats, &fats},
	}
	for _, fl := range fields {
		n, convErr := strconv.Atoi(strings.TrimSpace(fl.raw))
		if convErr != nil || n < 0 {
			return 0, 0, 0, 0, &ValidationError{Field: fl.name, Msg: msgInvalidNumbers}
		}
		*fl.dst = n
	}
	return cal, protein, carbs, fats, nil
}

func lenientInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
