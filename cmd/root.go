package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/config"
	"github.com/theirongolddev/caltrack/internal/model"
	"github.com/theirongolddev/caltrack/internal/pipeline"
	"github.com/theirongolddev/caltrack/internal/store"
	"github.com/theirongolddev/caltrack/internal/tracker"
)

var (
	flagDataDir   string
	flagDate      string
	flagDays      int
	flagQuiet     bool
	flagVerbose   bool
	flagEphemeral bool
)

var rootCmd = &cobra.Command{
	Use:   "caltrack",
	Short: "Calorie and macro tracker",
	Long:  "Log meals, track daily and weekly calorie goals, and review trends.",
	RunE:  runSummary,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		slog.SetDefault(newLogger())
		return config.LoadEnv()
	},
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (default from config or $XDG_DATA_HOME/caltrack)")
	rootCmd.PersistentFlags().StringVarP(&flagDate, "date", "D", "", "Selected date, YYYY-MM-DD, today or yesterday")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 14, "Days of history for the daily table")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep data in memory only (nothing is saved)")
}

func newLogger() *slog.Logger {
	var w io.Writer = os.Stderr
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	if flagQuiet {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openStore opens the entry store the flags point at: memory for
// --ephemeral, otherwise the SQLite file in the data dir. The returned close
// func must be called once the command is done.
func openStore() (*store.EntryStore, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, nil, err
	}
	defaults := model.NewGoalConfig(cfg.General.DefaultDailyGoal)

	// cfg carries the resolved data dir from here on; empty means memory.
	if flagEphemeral {
		cfg.General.DataDir = ""
		return store.NewEntryStore(store.NewMemory(), defaults), cfg, func() {}, nil
	}
	cfg.General.DataDir = flagDataDir
	if cfg.General.DataDir == "" {
		cfg.General.DataDir = config.GetDataDir(cfg)
	}

	dbPath := config.DBPath(cfg.General.DataDir)
	slog.Debug("opening store", slog.String("path", dbPath))

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			slog.Warn("closing store", slog.String("error", err.Error()))
		}
	}
	return store.NewEntryStore(db, defaults), cfg, closeFn, nil
}

// openTracker is the shared state loading path used by all commands.
func openTracker() (*tracker.Tracker, config.Config, func(), error) {
	es, cfg, closeFn, err := openStore()
	if err != nil {
		return nil, cfg, nil, err
	}
	tr, err := tracker.New(es, tracker.WithLogger(slog.Default()))
	if err != nil {
		closeFn()
		return nil, cfg, nil, err
	}
	return tr, cfg, closeFn, nil
}

// selectedDate resolves --date against the tracker's clock. Future dates are
// rejected.
func selectedDate(tr *tracker.Tracker) (string, error) {
	today := tr.Today()
	return resolveDate(flagDate, today)
}

func resolveDate(raw, today string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return model.AddDays(today, -1), nil
	}
	if _, err := model.ParseDate(raw); err != nil {
		return "", err
	}
	if !pipeline.CanSelect(raw, today) {
		return "", fmt.Errorf("%s is in the future", raw)
	}
	return raw, nil
}

// warnPersist reports a failed save after a mutation.
func warnPersist(tr *tracker.Tracker) {
	if err := tr.LastPersistError(); err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Warning: change not saved: %v\n", err)
	}
}

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}
