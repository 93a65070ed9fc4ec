package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/pipeline"
	"github.com/theirongolddev/caltrack/internal/tui/components"
	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

func (a App) renderEntriesTab(cw, h int) string {
	t := theme.Active
	title := fmt.Sprintf("Entries · %s", cli.FormatDateLabel(a.selected, a.today))

	if len(a.dayEntries) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("Nothing logged for this day. Press a to add an entry.")
		return components.ContentCard(title, body, cw)
	}

	if a.isCompactLayout() {
		return components.ContentCard(title, a.renderEntryList(components.CardInnerWidth(cw), h), cw)
	}

	leftW := max(cw*2/5, 40)
	rightW := cw - leftW
	left := components.ContentCard(title, a.renderEntryList(components.CardInnerWidth(leftW), h), leftW)
	right := components.ContentCard("Detail", a.renderEntryDetail(), rightW)
	return components.CardRow([]string{left, right})
}

func (a App) renderEntryList(innerW, h int) string {
	t := theme.Active

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	// card border (2) + title (1) + header (1) + footer (2)
	visible := max(h-6, 3)
	offset := 0
	if a.entryCursor >= visible {
		offset = a.entryCursor - visible + 1
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-10s %10s %6s %6s %6s", "Time", "Meal", "kcal", "P", "C", "F")))
	b.WriteString("\n")

	end := min(offset+visible, len(a.dayEntries))
	for i := offset; i < end; i++ {
		e := a.dayEntries[i]
		line := fmt.Sprintf("%-6s %-10s %10s %6d %6d %6d",
			e.Timestamp.Local().Format("15:04"),
			e.MealType.Title(),
			cli.FormatNumber(int64(e.Calories)),
			e.Protein, e.Carbs, e.Fats)
		line = truncStr(line, innerW)
		if i == a.entryCursor {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("%-*s", innerW, line)))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	total := a.day.Consumed
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d entries · %s · [a]dd [enter]edit [d]elete",
		len(a.dayEntries), cli.FormatCalories(total.Calories))))
	return b.String()
}

func (a App) renderEntryDetail() string {
	t := theme.Active
	e, ok := a.cursorEntry()
	if !ok {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("Meal", e.MealType.Title()))
	b.WriteString(row("Logged", e.Timestamp.Local().Format("Mon Jan 2 15:04")))
	b.WriteString(row("Calories", cli.FormatCalories(e.Calories)))
	b.WriteString("\n")

	macros := []struct {
		name  string
		grams int
		kcal  int
		color lipgloss.Color
	}{
		{"Protein", e.Protein, e.Protein * pipeline.KcalPerGramProtein, t.Blue},
		{"Carbs", e.Carbs, e.Carbs * pipeline.KcalPerGramCarbs, t.Yellow},
		{"Fats", e.Fats, e.Fats * pipeline.KcalPerGramFat, t.Magenta},
	}
	fromMacros := pipeline.FromMacros(e.Protein, e.Carbs, e.Fats)
	for _, m := range macros {
		share := 0.0
		if fromMacros > 0 {
			share = float64(m.kcal) / float64(fromMacros) * 100
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", m.name)))
		b.WriteString(lipgloss.NewStyle().Foreground(m.color).Background(t.Surface).Bold(true).
			Render(fmt.Sprintf("%-7s", cli.FormatGrams(m.grams))))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %5s kcal  %3.0f%%", cli.FormatNumber(int64(m.kcal)), share)))
		b.WriteString("\n")
	}

	if !pipeline.MacrosMatch(e.Calories, e.Protein, e.Carbs, e.Fats) {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("Macros add up to %s", cli.FormatCalories(fromMacros))))
		b.WriteString("\n")
	}

	dayShare := 0.0
	if a.day.Consumed.Calories > 0 {
		dayShare = float64(e.Calories) / float64(a.day.Consumed.Calories) * 100
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%.0f%% of this day's calories", dayShare)))
	return b.String()
}

// entryLine is the one-line summary used in notices.
func entryLine(e model.Entry) string {
	return fmt.Sprintf("%s · %s", e.MealType.Title(), cli.FormatCalories(e.Calories))
}
