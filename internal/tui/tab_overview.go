package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/tui/components"
	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	day := a.day
	week := a.week
	var b strings.Builder

	// Row 1: metric cards
	goalDelta := "base " + cli.FormatCalories(a.goals.DailyCalorieGoal)
	if spread := math.Round(day.Plan.SpreadPerDay); spread != 0 {
		goalDelta += fmt.Sprintf(" · %+.0f/day", spread)
	}
	remainingColor := t.Green
	if day.Remaining == 0 {
		remainingColor = t.Red
	}
	metrics := []components.Metric{
		{Label: "Consumed", Value: cli.FormatCalories(day.Consumed.Calories), Delta: cli.FormatDateLabel(day.Date, a.today)},
		{Label: "Remaining", Value: cli.FormatKcal(day.Remaining), Delta: cli.FormatPercent(day.Percent) + " of goal", Color: remainingColor},
		{Label: "Effective Goal", Value: cli.FormatKcal(day.EffectiveGoal), Delta: goalDelta},
		{Label: "This Week", Value: cli.FormatCalories(week.Consumed), Delta: "of " + cli.FormatCalories(week.WeeklyGoal)},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: progress + streak
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	progressCard := components.ContentCard("Progress", a.renderProgressBody(components.CardInnerWidth(halves[0])), halves[0])
	streakCard := components.ContentCard(fmt.Sprintf("Streak · %d day(s)", a.streaks.Current), a.renderStreakBody(), halves[1])
	if a.isCompactLayout() {
		b.WriteString(progressCard)
		b.WriteString("\n")
		b.WriteString(streakCard)
	} else {
		b.WriteString(components.CardRow([]string{progressCard, streakCard}))
	}
	b.WriteString("\n")

	// Row 3: last 7 days
	bars := make([]components.Bar, len(a.graph))
	for i, g := range a.graph {
		color := t.Green
		if g.Over {
			color = t.Red
		}
		bars[i] = components.Bar{Value: float64(g.Calories), Label: g.Label, Color: color}
	}
	b.WriteString(components.ContentCard(
		"Last 7 Days",
		components.BarChart(bars, float64(a.goals.DailyCalorieGoal), components.CardInnerWidth(cw), 8),
		cw,
	))

	return b.String()
}

func (a App) renderProgressBody(innerW int) string {
	t := theme.Active
	day := a.day
	week := a.week

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	labelW := 6
	detailW := 20
	barW := max(innerW-labelW-detailW-8, 10)

	dayPct := 0.0
	if day.EffectiveGoal > 0 {
		dayPct = float64(day.Consumed.Calories) / day.EffectiveGoal
	}
	weekPct := week.Percent / 100

	var b strings.Builder
	b.WriteString(components.GoalBar("Day", dayPct,
		fmt.Sprintf("%s / %s", cli.FormatNumber(int64(day.Consumed.Calories)), cli.FormatKcal(day.EffectiveGoal)),
		labelW, barW))
	b.WriteString("\n")
	b.WriteString(components.GoalBar("Week", weekPct,
		fmt.Sprintf("%s / %s", cli.FormatNumber(int64(week.Consumed)), cli.FormatCalories(week.WeeklyGoal)),
		labelW, barW))
	b.WriteString("\n\n")

	c := day.Consumed
	b.WriteString(mutedStyle.Render("Protein ") + valueStyle.Render(cli.FormatGrams(c.Protein)))
	b.WriteString(mutedStyle.Render("   Carbs ") + valueStyle.Render(cli.FormatGrams(c.Carbs)))
	b.WriteString(mutedStyle.Render("   Fats ") + valueStyle.Render(cli.FormatGrams(c.Fats)))
	b.WriteString("\n")

	badge := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("not on target (80-100% of goal)")
	if day.OnTarget {
		badge = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true).Render("✓ on target")
	}
	b.WriteString(badge)

	return b.String()
}

func (a App) renderStreakBody() string {
	t := theme.Active

	hitStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	missStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	todayStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	var marks, labels []string
	for _, d := range a.streaks.Last7 {
		mark := missStyle.Render(" ○ ")
		if d.HasEntry {
			mark = hitStyle.Render(" ● ")
		}
		lbl := labelStyle.Render(fmt.Sprintf("%-3s", d.Weekday))
		if d.IsToday {
			lbl = todayStyle.Render(fmt.Sprintf("%-3s", d.Weekday))
		}
		marks = append(marks, mark)
		labels = append(labels, lbl)
	}

	var b strings.Builder
	b.WriteString(strings.Join(marks, space))
	b.WriteString("\n")
	b.WriteString(strings.Join(labels, space))
	b.WriteString("\n\n")

	logged := 0
	for _, d := range a.streaks.Last7 {
		if d.HasEntry {
			logged++
		}
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("Logged %d of the last 7 days", logged)))
	return b.String()
}
