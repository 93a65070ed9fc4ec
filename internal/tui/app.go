// Package tui provides the interactive Bubble Tea dashboard for caltrack.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/config"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/pipeline"
	"github.com/theirongolddev/caltrack/internal/tracker"
	"github.com/theirongolddev/caltrack/internal/tui/components"
	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

// Loader builds the tracker; it runs off the UI goroutine.
type Loader func() (*tracker.Tracker, error)

// DataLoadedMsg is sent when the tracker finishes loading stored state.
type DataLoadedMsg struct {
	Tracker  *tracker.Tracker
	LoadTime time.Duration
	Err      error
}

// tickMsg rolls the day over at midnight while the dashboard is open.
type tickMsg time.Time

const (
	tabOverview = iota
	tabEntries
	tabCalendar
	tabTrends
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	load     Loader
	tr       *tracker.Tracker
	cfg      config.Config
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Pre-computed for the current selection
	today      string
	goals      model.GoalConfig
	day        model.DayProgress
	week       model.WeekProgress
	analytics  model.Analytics
	streaks    model.Streaks
	graph      []model.GraphBar
	series     []model.DayTotals // last 30 days, oldest first
	dayEntries []model.Entry
	month      model.MonthGrid

	// Selection
	selected    string
	calYear     int
	calMonth    int
	entryCursor int
	confirmDel  bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	notice    string
	noticeErr bool

	form     *entryForm
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model. needSetup shows the first-run form
// once the data is loaded.
func NewApp(load Loader, cfg config.Config, needSetup bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		load:      load,
		cfg:       cfg,
		needSetup: needSetup,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.load),
		a.spinner.Tick,
		tickCmd(),
	)
}

// recompute refreshes every derived view of the tracker state. A missing or
// future selection falls back to today.
func (a *App) recompute() {
	if a.tr == nil {
		return
	}
	a.today = a.tr.Today()
	if a.selected == "" || !pipeline.CanSelect(a.selected, a.today) {
		a.selected = a.today
	}
	if a.calYear == 0 {
		a.followSelected()
	}

	entries := a.tr.Entries()
	a.goals = a.tr.Goals()
	a.day = pipeline.DayProgressFor(entries, a.goals, a.selected, a.today)
	a.week = pipeline.WeekProgressFor(entries, a.goals, a.today)
	a.analytics = pipeline.Analyze(entries, a.today)
	a.streaks = pipeline.ComputeStreaks(entries, a.today)
	a.graph = pipeline.WeeklyGraph(entries, a.goals.DailyCalorieGoal, a.today)
	a.series = pipeline.DailySeries(entries, model.AddDays(a.today, -(trendWindowDays-1)), a.today)
	a.dayEntries = pipeline.EntriesForDate(entries, a.selected)
	a.month = pipeline.BuildMonth(entries, a.goals.DailyCalorieGoal, a.calYear, a.calMonth, a.selected, a.today)

	a.entryCursor = min(a.entryCursor, max(len(a.dayEntries)-1, 0))
}

// followSelected points the calendar at the month of the selected date.
func (a *App) followSelected() {
	if t, err := model.ParseDate(a.selected); err == nil {
		a.calYear, a.calMonth = t.Year(), int(t.Month())
	}
}

func (a *App) selectDate(date string) {
	if date == a.selected || !pipeline.CanSelect(date, a.today) {
		return
	}
	a.selected = date
	a.entryCursor = 0
	a.confirmDel = false
	a.followSelected()
	a.recompute()
}

// afterMutation refreshes derived state and reports how the save went.
func (a *App) afterMutation(done string) {
	a.recompute()
	if err := a.tr.LastPersistError(); err != nil {
		a.setNotice("Not saved: "+err.Error(), true)
		return
	}
	a.setNotice(done, false)
}

func (a *App) setNotice(msg string, isErr bool) {
	a.notice = msg
	a.noticeErr = isErr
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.loadErr != nil || a.showHelp || a.form != nil || a.setupForm != nil {
			return a, nil
		}
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabEntries && a.entryCursor > 0 {
				a.entryCursor--
				a.confirmDel = false
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabEntries && a.entryCursor < len(a.dayEntries)-1 {
				a.entryCursor++
				a.confirmDel = false
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.switchTab(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.loadErr != nil {
			if msg.String() == "q" || msg.String() == "esc" {
				return a, tea.Quit
			}
			return a, nil
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.form != nil {
			return a.updateEntryForm(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		return a.updateKeys(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.tr = msg.Tracker
		a.recompute()

		if a.needSetup {
			a.setupForm = newSetupForm(a.goals.DailyCalorieGoal, a.cfg, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		if a.tr != nil && a.tr.Today() != a.today {
			wasToday := a.selected == a.today
			a.recompute()
			if wasToday {
				a.selectDate(a.today)
			}
		}
		return a, tickCmd()
	}

	// Forward unhandled messages to open inputs (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		var cmd tea.Cmd
		a.form, cmd = a.form.updateInputs(msg)
		return a, cmd
	}
	return a, nil
}

// updateKeys handles key presses when no form or input has focus.
func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// A pending delete takes the next key as its answer.
	if a.confirmDel {
		a.confirmDel = false
		if key == "y" || key == "Y" {
			a.deleteSelectedEntry()
		} else {
			a.setNotice("Delete cancelled", false)
		}
		return a, nil
	}

	switch a.activeTab {
	case tabEntries:
		if handled, cmd := a.entriesKeys(key); handled {
			return a, cmd
		}
	case tabCalendar:
		if a.calendarKeys(key) {
			return a, nil
		}
	case tabSettings:
		if handled, cmd := a.settingsKeys(key); handled {
			return a, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "a":
		return a, a.openAddForm()
	case "[":
		a.stepDate(-1)
		return a, nil
	case "]":
		a.stepDate(1)
		return a, nil
	case "T":
		a.selectDate(a.today)
		return a, nil
	case "left":
		a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		return a, nil
	case "right":
		a.switchTab((a.activeTab + 1) % len(components.Tabs))
		return a, nil
	}

	if r := []rune(key); len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.switchTab(idx)
		}
	}
	return a, nil
}

func (a *App) switchTab(idx int) {
	a.activeTab = idx
	a.confirmDel = false
	a.settings.editing = false
}

// stepDate moves the selected date by one day inside the current week.
func (a *App) stepDate(delta int) {
	next, ok := pipeline.StepDate(a.selected, delta, a.today)
	if !ok {
		return
	}
	a.selectDate(next)
}

func (a *App) entriesKeys(key string) (bool, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.entryCursor < len(a.dayEntries)-1 {
			a.entryCursor++
		}
		return true, nil
	case "k", "up":
		if a.entryCursor > 0 {
			a.entryCursor--
		}
		return true, nil
	case "enter":
		if e, ok := a.cursorEntry(); ok {
			return true, a.openEditForm(e)
		}
		return true, nil
	case "d", "delete":
		if e, ok := a.cursorEntry(); ok {
			a.confirmDel = true
			a.setNotice(fmt.Sprintf("Delete %s? [y/N]", entryLine(e)), true)
		}
		return true, nil
	}
	return false, nil
}

func (a *App) cursorEntry() (model.Entry, bool) {
	if a.entryCursor < 0 || a.entryCursor >= len(a.dayEntries) {
		return model.Entry{}, false
	}
	return a.dayEntries[a.entryCursor], true
}

func (a *App) deleteSelectedEntry() {
	e, ok := a.cursorEntry()
	if !ok {
		return
	}
	if err := a.tr.DeleteEntry(e.ID); err != nil {
		a.setNotice(err.Error(), true)
		return
	}
	a.afterMutation("Entry deleted")
}

// calendarKeys moves the selection by day (h/l) or week (k/j) and pages the
// displayed month with { and }.
func (a *App) calendarKeys(key string) bool {
	switch key {
	case "h":
		a.selectDate(model.AddDays(a.selected, -1))
	case "l":
		a.selectDate(model.AddDays(a.selected, 1))
	case "k", "up":
		a.selectDate(model.AddDays(a.selected, -7))
	case "j", "down":
		a.selectDate(model.AddDays(a.selected, 7))
	case "{":
		a.calYear, a.calMonth = pipeline.ShiftMonth(a.calYear, a.calMonth, -1)
		a.recompute()
	case "}":
		a.calYear, a.calMonth = pipeline.ShiftMonth(a.calYear, a.calMonth, 1)
		a.recompute()
	case "enter":
		a.switchTab(tabOverview)
	default:
		return false
	}
	return true
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetup()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewLoadError()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	if a.form != nil {
		return a.viewForm()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  caltrack needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ caltrack"))
	b.WriteString(subtitleStyle.Render(" · calories & macros"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading entries..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Background(t.Surface).
		Padding(1, 3)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := errStyle.Render("Could not load stored data") + "\n\n" +
		textStyle.Render(truncStr(a.loadErr.Error(), a.width-12)) + "\n\n" +
		textStyle.Render("Nothing was changed. Press q to quit.")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

type binding struct{ key, desc string }

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"o e c t x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"[ ]", "Previous / Next day (this week)"},
			{"T", "Back to today"},
		}},
		{"Entries", []binding{
			{"a", "Add entry"},
			{"j k", "Move cursor"},
			{"Enter", "Edit entry"},
			{"d", "Delete entry"},
		}},
		{"Calendar", []binding{
			{"h l", "Previous / Next day"},
			{"k j", "Previous / Next week"},
			{"{ }", "Previous / Next month"},
		}},
		{"General", []binding{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + date pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	pill := pillStyle.Render(" ") +
		pillAccent.Render(cli.FormatDateLabel(a.selected, a.today)) +
		pillStyle.Render(" │ goal ") +
		pillAccent.Render(cli.FormatCalories(a.goals.DailyCalorieGoal)) +
		pillStyle.Render(" ")
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.selected, a.notice, a.noticeErr)

	// 3. Content zone
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabEntries:
		content = a.renderEntriesTab(cw, contentH)
	case tabCalendar:
		content = a.renderCalendarTab(cw)
	case tabTrends:
		content = a.renderTrendsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadDataCmd(load Loader) tea.Cmd {
	return func() tea.Msg {
		if load == nil {
			return DataLoadedMsg{Err: errors.New("no data source configured")}
		}
		start := time.Now()
		tr, err := load()
		return DataLoadedMsg{Tracker: tr, LoadTime: time.Since(start), Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
