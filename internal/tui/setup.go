package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/caltrack/internal/config"
	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

// setupValues receives the first-run form answers.
type setupValues struct {
	goal  string
	theme string
}

func validateGoal(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a positive whole number of kcal")
	}
	return nil
}

func newSetupForm(goal int, cfg config.Config, vals *setupValues) *huh.Form {
	vals.goal = strconv.Itoa(goal)
	vals.theme = theme.ByName(config.GetTheme(cfg)).Name

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to caltrack").
				Description("Log meals, keep an eye on your daily and weekly calories.\nA couple of questions first."),
			huh.NewInput().
				Title("Daily calorie goal").
				Description("Your weekly goal is 7x this. You can change it later in Settings.").
				Value(&vals.goal).
				Validate(validateGoal),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	).WithShowHelp(true)
}

// saveSetup applies the answers: the goal goes to the tracker, the theme and
// the goal default to the config file.
func (a *App) saveSetup() {
	goal, err := strconv.Atoi(strings.TrimSpace(a.setupVals.goal))
	if err == nil && goal > 0 {
		if err := a.tr.SetDailyGoal(goal); err != nil {
			a.setNotice(err.Error(), true)
		}
	}

	cfg := loadConfigOrDefault()
	if goal > 0 {
		cfg.General.DefaultDailyGoal = goal
		a.cfg.General.DefaultDailyGoal = goal
	}
	cfg.Appearance.Theme = a.setupVals.theme
	a.cfg.Appearance.Theme = a.setupVals.theme
	theme.SetActive(a.setupVals.theme)

	if err := config.Save(cfg); err != nil {
		a.setNotice("Could not save config: "+err.Error(), true)
	} else if perr := a.tr.LastPersistError(); perr != nil {
		a.setNotice("Not saved: "+perr.Error(), true)
	} else {
		a.setNotice("Saved to "+config.ConfigPath(), false)
	}
	a.recompute()
}
