package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/config"
	"github.com/theirongolddev/caltrack/internal/tui/components"
	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

const (
	settingsFieldGoal = iota
	settingsFieldDefaultGoal
	settingsFieldTheme
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message
	saveErr error // non-nil if last save failed
}

// loadConfigOrDefault reads the config file fresh so saving from the TUI
// never writes back command-line overrides.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 6
	ti.Width = 12
	return ti
}

func (a *App) settingsKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return true, nil
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return true, nil
	case "enter":
		return true, a.settingsStartEdit()
	case "h", "l":
		if a.settings.cursor == settingsFieldTheme {
			delta := 1
			if key == "h" {
				delta = -1
			}
			a.saveTheme(theme.Next(theme.Active.Name, delta))
			return true, nil
		}
	}
	return false, nil
}

func (a *App) settingsStartEdit() tea.Cmd {
	a.settings.saved = false
	a.settings.saveErr = nil

	switch a.settings.cursor {
	case settingsFieldTheme:
		// Enter steps through themes instead of opening an input.
		a.saveTheme(theme.Next(theme.Active.Name, 1))
		return nil
	case settingsFieldGoal:
		a.settings.input = newSettingsInput()
		a.settings.input.Placeholder = strconv.Itoa(a.goals.DailyCalorieGoal)
		a.settings.input.SetValue(strconv.Itoa(a.goals.DailyCalorieGoal))
	case settingsFieldDefaultGoal:
		a.settings.input = newSettingsInput()
		a.settings.input.Placeholder = strconv.Itoa(config.DefaultConfig().General.DefaultDailyGoal)
		a.settings.input.SetValue(strconv.Itoa(a.cfg.General.DefaultDailyGoal))
	}

	a.settings.editing = true
	return a.settings.input.Focus()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		if a.settings.saveErr == nil {
			a.settings.editing = false
			a.settings.saved = true
		}
		return a, nil
	case "esc":
		a.settings.editing = false
		a.settings.saveErr = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	val := strings.TrimSpace(a.settings.input.Value())
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		a.settings.saveErr = errors.New("enter a positive whole number")
		return
	}

	switch a.settings.cursor {
	case settingsFieldGoal:
		if err := a.tr.SetDailyGoal(n); err != nil {
			a.settings.saveErr = err
			return
		}
		a.settings.saveErr = a.tr.LastPersistError()
		a.recompute()
	case settingsFieldDefaultGoal:
		cfg := loadConfigOrDefault()
		cfg.General.DefaultDailyGoal = n
		a.settings.saveErr = config.Save(cfg)
		a.cfg.General.DefaultDailyGoal = n
	}
}

func (a *App) saveTheme(name string) {
	theme.SetActive(name)
	a.cfg.Appearance.Theme = name
	cfg := loadConfigOrDefault()
	cfg.Appearance.Theme = name
	a.settings.saveErr = config.Save(cfg)
	a.settings.saved = a.settings.saveErr == nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	fields := []struct{ label, value string }{
		{"Daily Goal", cli.FormatCalories(a.goals.DailyCalorieGoal)},
		{"New-install Goal", cli.FormatCalories(a.cfg.General.DefaultDailyGoal)},
		{"Theme", t.Name},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker+label+value); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [h/l] theme  [Esc] cancel"))

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-17s", label)) + valueStyle.Render(value) + "\n"
	}
	var info strings.Builder
	info.WriteString(row("Weekly goal:", cli.FormatCalories(a.goals.WeeklyCalorieGoal)+" (7x daily)"))
	info.WriteString(row("Entries stored:", cli.FormatNumber(int64(len(a.tr.Entries())))))
	dataDir := a.cfg.General.DataDir
	if dataDir == "" {
		dataDir = "(in memory, nothing is saved)"
	}
	info.WriteString(row("Data directory:", dataDir))
	info.WriteString(row("Load time:", fmt.Sprintf("%dms", a.loadTime.Milliseconds())))
	info.WriteString(labelStyle.Render(fmt.Sprintf("%-17s", "Config file:")) + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", info.String(), cw))
	return b.String()
}
