// Package config loads and saves caltrack's TOML configuration and resolves
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that take precedence over the config file.
const (
	EnvDataDir = "CALTRACK_DATA_DIR"
	EnvTheme   = "CALTRACK_THEME"
)

// Config holds all caltrack configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds storage and goal preferences.
type GeneralConfig struct {
	DataDir          string `toml:"data_dir,omitempty"`
	DefaultDailyGoal int    `toml:"default_daily_goal"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDailyGoal: 1900,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "caltrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "caltrack")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// EnvPath returns the path of the optional .env file.
func EnvPath() string {
	return filepath.Join(ConfigDir(), ".env")
}

// LoadEnv reads the optional .env file into the process environment.
// Variables already set are left alone.
func LoadEnv() error {
	err := godotenv.Load(EnvPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", EnvPath(), err)
	}
	return nil
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.General.DefaultDailyGoal <= 0 {
		cfg.General.DefaultDailyGoal = DefaultConfig().General.DefaultDailyGoal
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	return f.Close()
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// StateDir returns the directory for runtime files such as the daemon pid
// and log.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "caltrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "caltrack")
}

// GetDataDir returns the data directory from env var, config, or the XDG
// data home, in that order.
func GetDataDir(cfg Config) string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "caltrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "caltrack")
}

// DBPath returns the SQLite database path inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "caltrack.db")
}

// GetTheme returns the theme from env var or config, in that order.
func GetTheme(cfg Config) string {
	if th := os.Getenv(EnvTheme); th != "" {
		return th
	}
	return cfg.Appearance.Theme
}
