package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/pipeline"
	"github.com/theirongolddev/caltrack/internal/tui/components"
	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

const calCellW = 7

func (a App) renderCalendarTab(cw int) string {
	gridW := 7*calCellW + 4 + 2
	if a.isCompactLayout() || cw < gridW+30 {
		return components.ContentCard(a.monthTitle(), a.renderMonthGrid()+"\n\n"+a.renderLegend(), cw) +
			"\n" + components.ContentCard("Selected Day", a.renderSelectedDay(), cw)
	}

	left := components.ContentCard(a.monthTitle(), a.renderMonthGrid()+"\n\n"+a.renderLegend(), gridW)
	right := components.ContentCard("Selected Day", a.renderSelectedDay(), cw-gridW)
	return components.CardRow([]string{left, right})
}

func (a App) monthTitle() string {
	return fmt.Sprintf("%s %d", time.Month(a.month.Month), a.month.Year)
}

// renderMonthGrid draws a Sunday-start heat map, one cell per day with the
// day number over the calorie total.
func (a App) renderMonthGrid() string {
	t := theme.Active
	g := a.month

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	blank := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", calCellW))

	var b strings.Builder
	for wd := 0; wd < 7; wd++ {
		b.WriteString(headStyle.Render(fmt.Sprintf("%-*s", calCellW, cli.FormatDayOfWeek(wd))))
	}
	b.WriteString("\n")

	cells := make([][2]string, 0, g.Leading+len(g.Days))
	for i := 0; i < g.Leading; i++ {
		cells = append(cells, [2]string{blank, blank})
	}
	for _, d := range g.Days {
		cells = append(cells, a.renderDayCell(d))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, [2]string{blank, blank})
	}

	for row := 0; row < len(cells); row += 7 {
		for line := 0; line < 2; line++ {
			for _, c := range cells[row : row+7] {
				b.WriteString(c[line])
			}
			if row+7 < len(cells) || line == 0 {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (a App) renderDayCell(d model.CalendarDay) [2]string {
	t := theme.Active

	numStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	calStyle := lipgloss.NewStyle().Foreground(t.Heat(d.Intensity)).Background(t.Surface)

	switch {
	case d.IsSelected:
		numStyle = numStyle.Background(t.AccentDim).Foreground(t.AccentBright).Bold(true)
		calStyle = calStyle.Background(t.AccentDim)
	case d.IsToday:
		numStyle = numStyle.Foreground(t.Accent).Bold(true).Underline(true)
	case !d.Selectable:
		numStyle = numStyle.Foreground(t.TextDim)
	}

	num := fmt.Sprintf("%-*d", calCellW, d.Day)
	cal := strings.Repeat(" ", calCellW)
	if d.Calories > 0 {
		cal = fmt.Sprintf("%-*s", calCellW, cli.FormatNumber(int64(d.Calories)))
	} else if d.Selectable {
		cal = fmt.Sprintf("%-*s", calCellW, "·")
	}
	return [2]string{numStyle.Render(num), calStyle.Render(cal)}
}

func (a App) renderLegend() string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	parts := make([]string, 0, 5)
	for _, i := range []model.Intensity{model.NoData, model.Under50, model.Under75, model.Under100, model.Over100} {
		swatch := lipgloss.NewStyle().Foreground(t.Heat(i)).Background(t.Surface).Render("■")
		parts = append(parts, swatch+muted.Render(" "+i.String()))
	}
	return strings.Join(parts[:3], muted.Render("  ")) + "\n" + strings.Join(parts[3:], muted.Render("  "))
}

func (a App) renderSelectedDay() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	c := a.day.Consumed
	class := pipeline.Classify(c.Calories, a.goals.DailyCalorieGoal)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-10s", label)) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(valueStyle.Render(cli.FormatDateLabel(a.selected, a.today)))
	b.WriteString(dimStyle.Render("  " + a.selected))
	b.WriteString("\n\n")
	b.WriteString(row("Calories", cli.FormatCalories(c.Calories)))
	b.WriteString(row("Protein", cli.FormatGrams(c.Protein)))
	b.WriteString(row("Carbs", cli.FormatGrams(c.Carbs)))
	b.WriteString(row("Fats", cli.FormatGrams(c.Fats)))
	b.WriteString(row("Entries", fmt.Sprintf("%d", len(a.dayEntries))))
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", "Of goal")))
	b.WriteString(lipgloss.NewStyle().Foreground(t.Heat(class)).Background(t.Surface).Bold(true).Render(class.String()))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("h/l day · k/j week · {/} month · enter overview"))
	return b.String()
}
