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

const trendWindowDays = 30

func (a App) renderTrendsTab(cw int) string {
	t := theme.Active
	an := a.analytics
	var b strings.Builder

	if an.DaysTracked == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
			Render("No entries in the last 30 days.")
		return components.ContentCard("Trends", body, cw)
	}

	avg := an.Averages
	metrics := []components.Metric{
		{Label: "Days Tracked", Value: fmt.Sprintf("%d", an.DaysTracked), Delta: "last 30 days"},
		{Label: "Avg Calories", Value: cli.FormatCalories(avg.Calories), Delta: "per tracked day"},
		{Label: "Avg Protein", Value: cli.FormatGrams(avg.Protein), Color: t.Blue},
		{Label: "Avg Carbs", Value: cli.FormatGrams(avg.Carbs), Color: t.Yellow},
		{Label: "Avg Fats", Value: cli.FormatGrams(avg.Fats), Color: t.Magenta},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Week over Week", a.renderTrendBody(an.Trend), cw))
	b.WriteString("\n")

	goal := a.goals.DailyCalorieGoal
	bars := make([]components.Bar, len(a.series))
	values := make([]float64, len(a.series))
	for i, d := range a.series {
		label := ""
		if i%5 == 0 || i == len(a.series)-1 {
			label = d.Date[8:]
		}
		bars[i] = components.Bar{
			Value: float64(d.Calories),
			Label: label,
			Color: t.Heat(pipeline.Classify(d.Calories, goal)),
		}
		values[i] = float64(d.Calories)
	}
	chartW := components.CardInnerWidth(cw)
	body := components.BarChart(bars, float64(goal), chartW, 8) + "\n\n" +
		lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("spark ") +
		components.Sparkline(values, t.Accent)
	b.WriteString(components.ContentCard("Daily Calories · 30 days", body, cw))

	return b.String()
}

func (a App) renderTrendBody(tr *model.Trend) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if tr == nil {
		return mutedStyle.Render(fmt.Sprintf(
			"A trend needs 14 tracked days in the last 30; %d so far.", a.analytics.DaysTracked))
	}

	arrow, color := "→", t.TextPrimary
	switch tr.Direction {
	case model.TrendIncreasing:
		arrow, color = "↑", t.Orange
	case model.TrendDecreasing:
		arrow, color = "↓", t.Green
	}
	valueStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(valueStyle.Render(arrow + " " + cli.FormatTrend(*tr)))
	b.WriteString(mutedStyle.Render("  " + string(tr.Direction)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("last 7 tracked days %s/day · previous 7 %s/day",
		cli.FormatKcal(tr.LastAverage), cli.FormatKcal(tr.PreviousAverage))))
	return b.String()
}
