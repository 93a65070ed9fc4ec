package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/theirongolddev/caltrack/internal/config"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/store"
	"github.com/theirongolddev/caltrack/internal/tracker"
)

// Saturday, so the current week runs 2023-12-31 through 2024-01-06.
var fixedNow = time.Date(2024, 1, 6, 9, 30, 0, 0, time.Local)

func newTestApp(t *testing.T, entries ...model.Entry) App {
	t.Helper()
	tr, err := tracker.New(
		store.NewEntryStore(store.NewMemory(), model.DefaultGoals()),
		tracker.WithClock(func() time.Time { return fixedNow }),
	)
	if err != nil {
		t.Fatalf("tracker.New: %v", err)
	}
	for _, e := range entries {
		if err := tr.AddEntry(e); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}

	m, _ := NewApp(nil, config.DefaultConfig(), false).Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	m, _ = m.Update(DataLoadedMsg{Tracker: tr})
	return m.(App)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	var m tea.Model = a
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m.(App)
}

func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	for _, r := range s {
		a = press(t, a, string(r))
	}
	return a
}

func sample(id int64, date string, cal, p, c, f int) model.Entry {
	return model.Entry{
		ID:        id,
		Date:      date,
		Timestamp: fixedNow.Add(time.Duration(id) * time.Minute).UTC(),
		Calories:  cal,
		Protein:   p,
		Carbs:     c,
		Fats:      f,
		MealType:  model.Lunch,
	}
}

func TestLoadSelectsToday(t *testing.T) {
	a := newTestApp(t)
	if a.selected != "2024-01-06" {
		t.Fatalf("selected = %q, want 2024-01-06", a.selected)
	}
	if a.calYear != 2024 || a.calMonth != 1 {
		t.Fatalf("calendar = %d-%d", a.calYear, a.calMonth)
	}
	if !strings.Contains(ansi.Strip(a.View()), "Remaining") {
		t.Fatal("overview not rendered")
	}
}

func TestAddEntryDerivesMacros(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "a")
	if a.form == nil {
		t.Fatal("add form did not open")
	}
	a = typeText(t, a, "780")

	got := []string{a.form.inputs[1].Value(), a.form.inputs[2].Value(), a.form.inputs[3].Value()}
	want := []string{"59", "78", "26"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("macros = %v, want %v", got, want)
		}
	}

	// calories -> protein -> carbs -> fats -> save
	a = press(t, a, "enter", "enter", "enter", "enter")
	if a.form != nil {
		t.Fatalf("form still open: %q", a.form.err)
	}

	entries := a.tr.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Calories != 780 || e.Protein != 59 || e.Carbs != 78 || e.Fats != 26 {
		t.Fatalf("entry = %+v", e)
	}
	if e.Date != "2024-01-06" || e.MealType != model.Breakfast {
		t.Fatalf("entry date/meal = %s/%s", e.Date, e.MealType)
	}
	if a.day.Consumed.Calories != 780 {
		t.Fatalf("day consumed = %d, want 780", a.day.Consumed.Calories)
	}
	if a.notice != "Entry added" || a.noticeErr {
		t.Fatalf("notice = %q (err=%v)", a.notice, a.noticeErr)
	}
}

func TestAddEntryMissingFieldsKeepsFormOpen(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "a", "enter", "enter", "enter", "enter")
	if a.form == nil {
		t.Fatal("form closed on empty submit")
	}
	if a.form.err != "please fill in all fields" {
		t.Fatalf("err = %q", a.form.err)
	}
	if len(a.tr.Entries()) != 0 {
		t.Fatal("entry stored despite validation error")
	}

	a = press(t, a, "esc")
	if a.form != nil {
		t.Fatal("esc did not close the form")
	}
}

func TestMealPicker(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "a")
	a.form.setFocus(focusMeal)

	a = press(t, a, "l")
	if a.form.form.MealType != model.Lunch {
		t.Fatalf("meal = %s, want lunch", a.form.form.MealType)
	}
	a = press(t, a, "s")
	if a.form.form.MealType != model.Snack {
		t.Fatalf("meal = %s, want snack", a.form.form.MealType)
	}
	a = press(t, a, "l")
	if a.form.form.MealType != model.Breakfast {
		t.Fatalf("meal = %s, want breakfast after wrap", a.form.form.MealType)
	}
}

func TestEditRejectsMismatchedMacros(t *testing.T) {
	orig := sample(1, "2024-01-06", 2000, 150, 200, 67)
	a := newTestApp(t, orig)

	a = press(t, a, "e", "enter")
	if a.form == nil {
		t.Fatal("edit form did not open")
	}
	a = press(t, a, "enter", "enter", "enter", "enter")
	if a.form == nil {
		t.Fatal("mismatched macros were accepted")
	}
	if !strings.Contains(a.form.err, "expected 2003 calories") {
		t.Fatalf("err = %q", a.form.err)
	}
	got, _ := a.tr.Entry(1)
	if got.Calories != 2000 || got.Fats != 67 {
		t.Fatalf("entry changed: %+v", got)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	a := newTestApp(t, sample(1, "2024-01-06", 500, 30, 50, 20))

	a = press(t, a, "e", "d", "n")
	if len(a.tr.Entries()) != 1 {
		t.Fatal("entry deleted without confirmation")
	}

	a = press(t, a, "d", "y")
	if len(a.tr.Entries()) != 0 {
		t.Fatal("entry not deleted after confirmation")
	}
	if a.day.Consumed.Calories != 0 {
		t.Fatalf("day consumed = %d after delete", a.day.Consumed.Calories)
	}
}

func TestDateSteppingStaysInCurrentWeek(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "]")
	if a.selected != "2024-01-06" {
		t.Fatalf("stepped past today to %s", a.selected)
	}

	for i := 0; i < 10; i++ {
		a = press(t, a, "[")
	}
	if a.selected != "2023-12-31" {
		t.Fatalf("selected = %s, want week start 2023-12-31", a.selected)
	}
	if a.calYear != 2023 || a.calMonth != 12 {
		t.Fatalf("calendar did not follow: %d-%d", a.calYear, a.calMonth)
	}

	a = press(t, a, "T")
	if a.selected != "2024-01-06" {
		t.Fatalf("T went to %s", a.selected)
	}
}

func TestCalendarKeys(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "c")
	if a.activeTab != tabCalendar {
		t.Fatalf("activeTab = %d", a.activeTab)
	}

	a = press(t, a, "k")
	if a.selected != "2023-12-30" {
		t.Fatalf("k -> %s, want 2023-12-30", a.selected)
	}
	a = press(t, a, "j", "j")
	if a.selected != "2024-01-06" {
		t.Fatalf("j past today -> %s, want 2024-01-06", a.selected)
	}

	a = press(t, a, "{")
	if a.month.Month != 12 || a.month.Year != 2023 {
		t.Fatalf("month = %d-%d", a.month.Year, a.month.Month)
	}
	if a.selected != "2024-01-06" {
		t.Fatal("paging months changed the selection")
	}
}

func TestSettingsChangesDailyGoal(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "x", "enter")
	if !a.settings.editing {
		t.Fatal("goal input not opened")
	}
	a.settings.input.SetValue("2100")
	a = press(t, a, "enter")

	if a.settings.editing || a.settings.saveErr != nil {
		t.Fatalf("editing=%v err=%v", a.settings.editing, a.settings.saveErr)
	}
	g := a.tr.Goals()
	if g.DailyCalorieGoal != 2100 || g.WeeklyCalorieGoal != 14700 {
		t.Fatalf("goals = %+v", g)
	}
	// Nothing logged Sunday through Friday, so all six deficits land on today.
	if a.day.EffectiveGoal != 2100*7 {
		t.Fatalf("effective goal = %v, want %d", a.day.EffectiveGoal, 2100*7)
	}
}

func TestSettingsRejectsNonPositiveGoal(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "x", "enter")
	a.settings.input.SetValue("0")
	a = press(t, a, "enter")

	if a.settings.saveErr == nil || !a.settings.editing {
		t.Fatal("zero goal accepted")
	}
	if a.tr.Goals().DailyCalorieGoal != model.DefaultDailyGoal {
		t.Fatal("goal changed")
	}
}

func TestLoadErrorBlocksInput(t *testing.T) {
	m, _ := NewApp(nil, config.DefaultConfig(), false).Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(DataLoadedMsg{Err: errors.New("parsing calorieEntries: bad json")})
	a := m.(App)

	if !strings.Contains(ansi.Strip(a.View()), "Could not load stored data") {
		t.Fatal("load error not shown")
	}
	a = press(t, a, "a")
	if a.form != nil {
		t.Fatal("form opened with no data loaded")
	}
	if _, cmd := a.Update(keyMsg("q")); cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestTabKeysAndArrows(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "t")
	if a.activeTab != tabTrends {
		t.Fatalf("t -> %d", a.activeTab)
	}
	var m tea.Model = a
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.(App).activeTab != tabSettings {
		t.Fatalf("right -> %d", m.(App).activeTab)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.(App).activeTab != tabOverview {
		t.Fatalf("right wrap -> %d", m.(App).activeTab)
	}

	// Every tab renders without panicking.
	for i := 0; i < tabSettings+1; i++ {
		a.activeTab = i
		if a.View() == "" {
			t.Fatalf("tab %d rendered empty", i)
		}
	}
}
