package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/cli"
	"github.com/theirongolddev/caltrack/internal/config"
	"github.com/theirongolddev/caltrack/internal/daemon"
)

var (
	flagDaemonAddr     string
	flagDaemonInterval time.Duration
	flagDaemonDetach   bool
	flagDaemonPIDFile  string
	flagDaemonLogFile  string
	flagDaemonEvents   int
	flagDaemonChild    bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Serve today's progress over HTTP for status bars and widgets",
	Long: "Polls the entry store and serves today's progress at /v1/today,\n" +
		"with change events at /v1/events and /v1/stream (SSE).",
	RunE: runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and today's progress",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	pf := daemonCmd.PersistentFlags()
	pf.StringVar(&flagDaemonAddr, "addr", "127.0.0.1:8788", "HTTP listen address")
	pf.DurationVar(&flagDaemonInterval, "interval", 15*time.Second, "How often to re-read the store")
	pf.StringVar(&flagDaemonPIDFile, "pid-file", filepath.Join(config.StateDir(), "caltrackd.pid"), "PID file path")
	pf.StringVar(&flagDaemonLogFile, "log-file", filepath.Join(config.StateDir(), "caltrackd.log"), "Log file for --detach")
	pf.IntVar(&flagDaemonEvents, "events-buffer", 200, "Events kept in memory")

	daemonCmd.Flags().BoolVar(&flagDaemonDetach, "detach", false, "Run in the background")
	daemonCmd.Flags().BoolVar(&flagDaemonChild, "child", false, "Internal: detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd, daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

func pidFile() daemon.PIDFile {
	return daemon.PIDFile{Path: flagDaemonPIDFile}
}

func runDaemon(_ *cobra.Command, _ []string) error {
	switch {
	case flagDaemonDetach && flagDaemonChild:
		return errors.New("invalid daemon launch mode")
	case flagEphemeral:
		return errors.New("the daemon reads stored data; --ephemeral is not supported")
	case flagDaemonDetach:
		return spawnDetached()
	}

	es, cfg, closeFn, err := openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	release, err := pidFile().Claim(daemon.RuntimeState{
		PID:       os.Getpid(),
		Addr:      flagDaemonAddr,
		StartedAt: time.Now(),
		DataDir:   cfg.General.DataDir,
	})
	if err != nil {
		return err
	}
	defer release()

	// A detached child has no terminal; its stderr is the log file, so log
	// at info level there.
	logger := slog.Default()
	if flagDaemonChild && !flagQuiet {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	svc := daemon.New(es, daemon.Config{
		DataDir:      cfg.General.DataDir,
		Interval:     flagDaemonInterval,
		Addr:         flagDaemonAddr,
		EventsBuffer: flagDaemonEvents,
		Logger:       logger,
	})

	fmt.Printf("  caltrack daemon on http://%s/v1/today\n", flagDaemonAddr)
	fmt.Printf("  Reading %s every %s\n", config.DBPath(cfg.General.DataDir), flagDaemonInterval)
	fmt.Printf("  Stop with: caltrack daemon stop\n")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("daemon started", slog.String("addr", flagDaemonAddr))
	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("daemon stopped")
	return nil
}

// spawnDetached re-executes the current command line as a background child
// with output going to the log file.
func spawnDetached() error {
	if st, err := pidFile().Running(); err == nil {
		return fmt.Errorf("daemon already running (pid %d)", st.PID)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagDaemonLogFile), 0o750); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	//nolint:gosec // log path is configured by the local user
	logf, err := os.OpenFile(flagDaemonLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, append(filterDetachArg(os.Args[1:]), "--child")...) //nolint:gosec // re-exec of self
	child.Stdout = logf
	child.Stderr = logf
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	fmt.Printf("  Started daemon (pid %d)\n", child.Process.Pid)
	fmt.Printf("  API: http://%s/v1/today\n", flagDaemonAddr)
	fmt.Printf("  Log: %s\n", flagDaemonLogFile)
	return nil
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a != "--detach" && !strings.HasPrefix(a, "--detach=") {
			out = append(out, a)
		}
	}
	return out
}

func runDaemonStatus(cmd *cobra.Command, _ []string) error {
	st, err := pidFile().Running()
	if errors.Is(err, daemon.ErrNotRunning) {
		fmt.Println("  Daemon: not running")
		return nil
	}
	if err != nil {
		return err
	}

	addr := st.Addr
	if addr == "" {
		addr = flagDaemonAddr
	}
	fmt.Printf("  Daemon PID: %d\n", st.PID)
	fmt.Printf("  Address:    http://%s\n", addr)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
	defer cancel()
	status, err := daemon.FetchStatus(ctx, addr)
	if err != nil {
		fmt.Printf("  API:        %v\n", err)
		return nil
	}

	if status.LastPollAt.IsZero() {
		fmt.Println("  Last poll:  pending")
	} else {
		fmt.Printf("  Last poll:  %s (%d polls)\n", status.LastPollAt.Local().Format(time.RFC3339), status.PollCount)
	}
	today := status.Today
	fmt.Printf("  Today:      %s of %s (%d entries)\n",
		cli.FormatCalories(today.Calories), cli.FormatKcal(today.EffectiveGoal), today.Entries)
	fmt.Printf("  Week:       %s of %s\n",
		cli.FormatCalories(today.WeekCalories), cli.FormatCalories(today.WeeklyGoal))
	fmt.Printf("  Streak:     %d days\n", today.Streak)
	if status.LastError != "" {
		fmt.Printf("  Last error: %s\n", status.LastError)
	}
	return nil
}

func runDaemonStop(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 8*time.Second)
	defer cancel()

	pid, err := pidFile().Stop(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("  Stopped daemon (pid %d)\n", pid)
	return nil
}
