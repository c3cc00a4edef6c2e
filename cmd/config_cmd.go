// Package cmd implements the calbank CLI commands.
package cmd

import (
	"fmt"

	"calbank/internal/cli"
	"calbank/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
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

	fmt.Println("  [Profile]")
	fmt.Printf("    Sex:      %s\n", orUnset(cfg.Profile.Sex))
	fmt.Printf("    Age:      %s\n", orUnset(intInput(cfg.Profile.Age)))
	fmt.Printf("    Height:   %s cm\n", orUnset(floatInput(cfg.Profile.HeightCM)))
	fmt.Printf("    Weight:   %s kg\n", orUnset(floatInput(cfg.Profile.WeightKG)))
	fmt.Printf("    Activity: %s\n", cfg.Profile.Activity)
	fmt.Printf("    Pace:     %s lbs/week\n", floatInputOrZero(cfg.Profile.PaceLbsPerWeek))
	fmt.Println()

	fmt.Println("  [Daily target]")
	if cfg.Profile.Complete() {
		fmt.Printf("    BMR:     %s kcal\n", cli.FormatKcal(config.BMR(cfg.Profile)))
		fmt.Printf("    TDEE:    %s kcal\n", cli.FormatKcal(config.TDEE(cfg.Profile)))
		fmt.Printf("    Derived: %s kcal/day\n", cli.FormatKcal(config.DerivedTarget(cfg.Profile)))
	} else {
		fmt.Println("    Profile incomplete; derivation unavailable.")
	}
	if cfg.Profile.TargetKcal != nil {
		fmt.Printf("    Override: %s kcal/day\n", cli.FormatKcal(*cfg.Profile.TargetKcal))
	}
	fmt.Printf("    In effect: %s kcal/day\n", cli.FormatKcal(config.EffectiveTarget(cfg)))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Poll interval: %ds\n", cfg.Daemon.PollIntervalSec)
	fmt.Println()

	fmt.Println("  [Paths]")
	fmt.Printf("    Database: %s\n", flagDBPath)
	fmt.Println()

	fmt.Println("  Run `calbank setup` to reconfigure.")
	return nil
}

func floatInputOrZero(v float64) string {
	if s := floatInput(v); s != "" {
		return s
	}
	return "0"
}
