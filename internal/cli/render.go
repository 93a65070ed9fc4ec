package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/theirongolddev/caltrack/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. A row holding
// the single cell "---" is drawn as a separator. Cells may carry ANSI
// styling; widths are measured on the visible text.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], ansi.StringWidth(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], ansi.StringWidth(cell))
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padCell(h, widths[i], true) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// First column left-aligned, the rest are numbers.
			b.WriteString(valueStyle.Render(" " + padCell(cell, widths[i], i == 0) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")
	return b.String()
}

func padCell(s string, w int, left bool) string {
	if ansi.StringWidth(s) > w {
		s = ansi.Truncate(s, w, "…")
	}
	gap := strings.Repeat(" ", max(0, w-ansi.StringWidth(s)))
	if left {
		return s + gap
	}
	return gap + s
}

// RenderProgressBar renders a bar for a 0-100 percentage, colored by how
// close it is to full.
func RenderProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = min(max(pct, 0), 100)

	filled := int(pct / 100 * float64(width))
	color := ColorGreen
	switch {
	case pct >= 100:
		color = ColorRed
	case pct >= 80:
		color = ColorOrange
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %s", bar, FormatPercent(pct))
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderWeeklyBars draws one horizontal bar per day, red when the day went
// over goal and green otherwise, with a marker at the goal.
func RenderWeeklyBars(bars []model.GraphBar, goal, width int) string {
	peak := goal
	for _, bar := range bars {
		peak = max(peak, bar.Calories)
	}
	if peak <= 0 {
		peak = 1
	}
	goalCol := goal * width / peak

	var b strings.Builder
	for _, bar := range bars {
		n := bar.Calories * width / peak
		color := ColorGreen
		if bar.Over {
			color = ColorRed
		}

		line := []rune(strings.Repeat("█", n) + strings.Repeat(" ", width-n))
		if goalCol > n && goalCol < width {
			line[goalCol] = '┊'
		}

		fmt.Fprintf(&b, "  %-7s %s %s\n",
			bar.Label,
			lipgloss.NewStyle().Foreground(color).Render(string(line)),
			valueStyle.Render(FormatNumber(int64(bar.Calories))),
		)
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  goal %s", FormatCalories(goal))))
	b.WriteString("\n")
	return b.String()
}

// IntensityColor maps a heat-map class to its color.
func IntensityColor(i model.Intensity) lipgloss.Color {
	switch i {
	case model.Under50:
		return ColorBlue
	case model.Under75:
		return ColorYellow
	case model.Under100:
		return ColorGreen
	case model.Over100:
		return ColorRed
	default:
		return ColorTextDim
	}
}

// RenderMonth draws a Sunday-start heat-map calendar.
func RenderMonth(g model.MonthGrid) string {
	var b strings.Builder

	title := time.Month(g.Month).String() + fmt.Sprintf(" %d", g.Year)
	b.WriteString("  " + headerStyle.Render(title) + "\n")

	b.WriteString(" ")
	for wd := 0; wd < 7; wd++ {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %3s", FormatDayOfWeek(wd)[:2])))
	}
	b.WriteString("\n ")

	col := 0
	for ; col < g.Leading; col++ {
		b.WriteString("    ")
	}
	for _, d := range g.Days {
		style := lipgloss.NewStyle().Foreground(IntensityColor(d.Intensity))
		if d.IsToday {
			style = style.Bold(true).Underline(true)
		}
		if d.IsSelected {
			style = style.Reverse(true)
		}
		if !d.Selectable {
			style = style.Faint(true)
		}
		b.WriteString(" " + style.Render(fmt.Sprintf("%3d", d.Day)))

		col++
		if col == 7 {
			b.WriteString("\n ")
			col = 0
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderLegend lists the heat-map classes with their colors.
func RenderLegend() string {
	parts := make([]string, 0, 5)
	for _, i := range []model.Intensity{model.NoData, model.Under50, model.Under75, model.Under100, model.Over100} {
		swatch := lipgloss.NewStyle().Foreground(IntensityColor(i)).Render("■")
		parts = append(parts, swatch+" "+mutedStyle.Render(i.String()))
	}
	return "  " + strings.Join(parts, "  ")
}
