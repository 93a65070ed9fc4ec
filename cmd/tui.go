package cmd

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/config"
	"github.com/theirongolddev/caltrack/internal/tracker"
	"github.com/theirongolddev/caltrack/internal/tui"
	"github.com/theirongolddev/caltrack/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	es, cfg, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	theme.SetActive(config.GetTheme(cfg))

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The alt screen owns the terminal; save failures surface in the status
	// bar instead of on stderr.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	load := func() (*tracker.Tracker, error) {
		return tracker.New(es, tracker.WithLogger(quiet))
	}

	app := tui.NewApp(load, cfg, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
