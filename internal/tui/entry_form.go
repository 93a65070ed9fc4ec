package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/tracker"
	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

// Focus slots of the entry form. Slot 0 is the meal picker; the rest are
// text inputs in inputFields order.
const (
	focusMeal = iota
	focusCalories
	focusProtein
	focusCarbs
	focusFats
	focusCount
)

var inputFields = [...]tracker.Field{
	tracker.FieldCalories,
	tracker.FieldProtein,
	tracker.FieldCarbs,
	tracker.FieldFats,
}

var inputLabels = [...]string{"Calories", "Protein (g)", "Carbs (g)", "Fats (g)"}

// entryForm is the add/edit overlay. Every keystroke in a number field goes
// through tracker.EntryForm so calories and macros stay in step.
type entryForm struct {
	form   *tracker.EntryForm
	orig   model.Entry
	inputs [len(inputFields)]textinput.Model
	focus  int
	err    string
}

func newEntryForm(f *tracker.EntryForm, orig model.Entry) *entryForm {
	ef := &entryForm{form: f, orig: orig}
	for i := range ef.inputs {
		ti := textinput.New()
		ti.CharLimit = 6
		ti.Width = 12
		ti.Prompt = ""
		ti.Placeholder = "0"
		ef.inputs[i] = ti
	}
	ef.sync(-1)
	return ef
}

func (a *App) openAddForm() tea.Cmd {
	a.form = newEntryForm(tracker.NewAddForm(a.selected), model.Entry{})
	return a.form.setFocus(focusCalories)
}

func (a *App) openEditForm(e model.Entry) tea.Cmd {
	a.form = newEntryForm(tracker.NewEditForm(e), e)
	return a.form.setFocus(focusCalories)
}

// sync copies the form's text into every input except skip, which keeps its
// own cursor.
func (f *entryForm) sync(skip int) {
	values := [...]string{f.form.Calories, f.form.Protein, f.form.Carbs, f.form.Fats}
	for i := range f.inputs {
		if i+focusCalories == skip {
			continue
		}
		if f.inputs[i].Value() != values[i] {
			f.inputs[i].SetValue(values[i])
		}
	}
}

func (f *entryForm) setFocus(slot int) tea.Cmd {
	f.focus = (slot + focusCount) % focusCount
	var cmd tea.Cmd
	for i := range f.inputs {
		if i+focusCalories == f.focus {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *entryForm) cycleMeal(delta int) {
	idx := 0
	for i, m := range model.MealTypes {
		if m == f.form.MealType {
			idx = i
		}
	}
	n := len(model.MealTypes)
	f.form.MealType = model.MealTypes[((idx+delta)%n+n)%n]
}

// updateInputs feeds msg to the focused text input and pushes the new text
// through the form's derivation rules.
func (f *entryForm) updateInputs(msg tea.Msg) (*entryForm, tea.Cmd) {
	if f.focus == focusMeal {
		return f, nil
	}
	i := f.focus - focusCalories
	before := f.inputs[i].Value()

	var cmd tea.Cmd
	f.inputs[i], cmd = f.inputs[i].Update(msg)

	if v := f.inputs[i].Value(); v != before {
		if err := f.form.SetField(inputFields[i], v); err != nil {
			f.err = err.Error()
		} else {
			f.err = ""
		}
		f.sync(f.focus)
	}
	return f, cmd
}

func (a App) updateEntryForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.form

	switch msg.String() {
	case "esc":
		a.form = nil
		return a, nil
	case "tab", "down":
		return a, f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return a, f.setFocus(f.focus - 1)
	case "ctrl+s":
		a.submitForm()
		return a, nil
	case "enter":
		if f.focus < focusFats {
			return a, f.setFocus(f.focus + 1)
		}
		a.submitForm()
		return a, nil
	}

	if f.focus == focusMeal {
		switch msg.String() {
		case "left", "h":
			f.cycleMeal(-1)
		case "right", "l", " ":
			f.cycleMeal(1)
		case "b", "d", "s":
			// First letter picks directly: breakfast, dinner, snack.
			for _, m := range model.MealTypes {
				if strings.HasPrefix(string(m), msg.String()) {
					f.form.MealType = m
				}
			}
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.form, cmd = f.updateInputs(msg)
	return a, cmd
}

// submitForm validates and stores the form. On a validation error the form
// stays open with the message and no state changes.
func (a *App) submitForm() {
	f := a.form

	var (
		e    model.Entry
		err  error
		done string
	)
	if f.form.Mode == tracker.AddForm {
		e, err = f.form.Build(a.tr.NextID(), a.tr.Now())
		if err == nil {
			err = a.tr.AddEntry(e)
		}
		done = "Entry added"
	} else {
		e, err = f.form.Apply(f.orig)
		if err == nil {
			err = a.tr.ReplaceEntry(e)
		}
		done = "Entry updated"
	}

	if err != nil {
		var verr *tracker.ValidationError
		if errors.As(err, &verr) {
			f.err = verr.Msg
			if slot := slotForField(verr.Field); slot >= 0 {
				f.setFocus(slot)
			}
			return
		}
		f.err = err.Error()
		return
	}

	a.form = nil
	a.afterMutation(done)
}

func slotForField(field tracker.Field) int {
	if field == tracker.FieldMeal {
		return focusMeal
	}
	for i, fl := range inputFields {
		if fl == field {
			return i + focusCalories
		}
	}
	return -1
}

func (a App) viewForm() string {
	t := theme.Active
	f := a.form

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	focusLabel := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	title := "Add entry"
	if f.form.Mode == tracker.EditForm {
		title = "Edit entry"
	}

	label := func(slot int, text string) string {
		marker := "  "
		style := labelStyle
		if f.focus == slot {
			marker = "▸ "
			style = focusLabel
		}
		return style.Render(fmt.Sprintf("%s%-12s", marker, text))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ " + title))
	b.WriteString(dimStyle.Render("  " + cli.FormatDateLabel(f.form.Date, a.today)))
	b.WriteString("\n\n")

	meals := make([]string, len(model.MealTypes))
	for i, m := range model.MealTypes {
		if m == f.form.MealType {
			meals[i] = focusLabel.Render("(•) " + m.Title())
		} else {
			meals[i] = labelStyle.Render("( ) " + m.Title())
		}
	}
	b.WriteString(label(focusMeal, "Meal"))
	b.WriteString(strings.Join(meals, labelStyle.Render("  ")))
	b.WriteString("\n")

	for i := range f.inputs {
		b.WriteString(label(i+focusCalories, inputLabels[i]))
		b.WriteString(valueStyle.Render(f.inputs[i].View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(errStyle.Render(f.err))
		b.WriteString("\n")
	}
	hint := "Calories fill a 30/40/30 split; macros recompute calories."
	if f.form.Mode == tracker.EditForm {
		hint = "Macros must match calories within 1 kcal."
	}
	b.WriteString(dimStyle.Render(hint))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("tab/↑↓ move · ←→ meal · enter next/save · esc cancel"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}
