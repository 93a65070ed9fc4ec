// Package cmd implements the caltrack CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/caltrack/internal/config"
	"github.com/theirongolddev/caltrack/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration and storage",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = config.GetDataDir(cfg)
	}

	fmt.Println("  [General]")
	fmt.Printf("    Data directory:     %s\n", dataDir)
	fmt.Printf("    Default daily goal: %s kcal\n", formatNumber(int64(cfg.General.DefaultDailyGoal)))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", config.GetTheme(cfg))
	fmt.Println()

	db, err := store.Open(config.DBPath(dataDir))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	keys, err := db.Keys()
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}
	fmt.Println("  [Storage]")
	if len(keys) == 0 {
		fmt.Println("    empty (first run)")
	}
	for _, k := range keys {
		fmt.Printf("    %-18s %8s bytes  updated %s\n", k.Key, formatNumber(int64(k.Size)), k.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()

	fmt.Println("  Run `caltrack setup` to reconfigure.")
	return nil
}
