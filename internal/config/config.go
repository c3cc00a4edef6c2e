// Package config handles calbank configuration and daily target derivation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all calbank configuration.
type Config struct {
	Profile    ProfileConfig    `toml:"profile"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
	Daemon     DaemonConfig     `toml:"daemon"`
}

// ProfileConfig describes the user and how their daily target derives.
type ProfileConfig struct {
	Sex            string   `toml:"sex"` // male or female
	Age            int      `toml:"age"`
	HeightCM       float64  `toml:"height_cm"`
	WeightKG       float64  `toml:"weight_kg"`
	Activity       string   `toml:"activity"` // sedentary, light, moderate, active, very_active
	PaceLbsPerWeek float64  `toml:"pace_lbs_per_week"`
	TargetKcal     *float64 `toml:"target_kcal,omitempty"` // manual override; unset derives from the profile
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard settings.
type TUIConfig struct {
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
	AutoRefresh        bool `toml:"auto_refresh"`
}

// DaemonConfig holds the local status server settings.
type DaemonConfig struct {
	Addr            string `toml:"addr"`
	PollIntervalSec int    `toml:"poll_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Profile: ProfileConfig{
			Activity:       "moderate",
			PaceLbsPerWeek: 0.5,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			RefreshIntervalSec: 30,
			AutoRefresh:        true,
		},
		Daemon: DaemonConfig{
			Addr:            "127.0.0.1:7077",
			PollIntervalSec: 60,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "calbank")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "calbank")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
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
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
