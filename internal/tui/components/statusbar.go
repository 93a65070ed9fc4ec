package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// selected date on the right and an optional notice between them. Warnings
// are drawn in orange.
func RenderStatusBar(width int, selected, notice string, warn bool) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dateStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	if warn {
		noticeStyle = noticeStyle.Foreground(t.Orange)
	}

	left := hintStyle.Render(" [?]help  [q]uit")
	if notice != "" {
		left += hintStyle.Render("  ") + noticeStyle.Render(notice)
	}
	right := ""
	if selected != "" {
		right = dateStyle.Render(selected) + hintStyle.Render(" ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return barStyle.Width(width).MaxWidth(width).
		Render(left + barStyle.Render(strings.Repeat(" ", padding)) + right)
}
