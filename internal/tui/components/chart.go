package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

// Bar is one column of a BarChart.
type Bar struct {
	Value float64
	Label string
	Color lipgloss.Color
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BarChart renders vertical bars with a y axis and, when goal > 0, a dotted
// goal line across the empty cells of the row the goal falls in.
func BarChart(bars []Bar, goal float64, width, height int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	if width < 15 || height < 3 {
		values := make([]float64, len(bars))
		for i, b := range bars {
			values[i] = b.Value
		}
		return Sparkline(values, t.Accent)
	}

	maxVal := goal
	for _, b := range bars {
		maxVal = max(maxVal, b.Value)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y axis: grow the tick step until the intervals fit the height.
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)

	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := max(width-yLabelW-1, 5)

	n := len(bars)
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	}
	barW = min(max(barW, 1), 6)
	axisLen := n*barW + max(0, n-1)*gap

	goalRow := -1
	if goal > 0 {
		goalRow = int(math.Ceil(goal / ceiling * float64(chartH)))
	}

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	goalStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		empty := blankStyle.Render(strings.Repeat(" ", barW))
		sep := blankStyle.Render(strings.Repeat(" ", gap))
		if row == goalRow {
			empty = goalStyle.Render(strings.Repeat("┄", barW))
			sep = goalStyle.Render(strings.Repeat("┄", gap))
		}

		for i, bar := range bars {
			if i > 0 && gap > 0 {
				b.WriteString(sep)
			}
			color := bar.Color
			if color == "" {
				color = t.Accent
			}
			barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

			switch {
			case bar.Value >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case bar.Value > rowBottom:
				frac := (bar.Value - rowBottom) / (rowTop - rowBottom)
				idx := min(max(int(frac*8), 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(empty)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	// X axis labels, skipping any that would collide with the previous one.
	buf := []rune(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, bar := range bars {
		pos := i * (barW + gap)
		lbl := []rune(bar.Label)
		if pos <= lastEnd || len(lbl) == 0 {
			continue
		}
		end := min(pos+len(lbl), axisLen)
		copy(buf[pos:end], lbl)
		lastEnd = end
	}
	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	b.WriteString("\n")
	b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(labelStyle.Render(strings.TrimRight(string(buf), " ")))

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
