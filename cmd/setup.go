package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to caltrack!")
	fmt.Println()

	// 1. Daily goal
	tr, _, closeFn, err := openTracker()
	if err != nil {
		return err
	}
	defer closeFn()

	current := tr.Goals().DailyCalorieGoal
	fmt.Println("  1. Daily calorie goal")
	fmt.Println("     Your weekly goal is set to 7x this.")
	fmt.Printf("     Current: %s kcal (press enter to keep)\n", formatNumber(int64(current)))
	fmt.Print("     > ")
	goalStr, _ := reader.ReadString('\n')
	goalStr = strings.TrimSpace(goalStr)
	if goalStr != "" {
		goal, err := strconv.Atoi(goalStr)
		if err != nil {
			return fmt.Errorf("invalid goal %q", goalStr)
		}
		if err := tr.SetDailyGoal(goal); err != nil {
			return err
		}
		warnPersist(tr)
		cfg.General.DefaultDailyGoal = goal
	}
	fmt.Println()

	// 2. Theme
	fmt.Println("  2. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `caltrack setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
