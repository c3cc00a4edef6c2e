package cmd

import (
	"fmt"
	"os"

	"calbank/internal/bank"
	"calbank/internal/config"
	"calbank/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDBPath string
	flagTarget float64
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "calbank",
	Short: "Rolling 7-day caloric bank",
	Long: "Track daily calories against your target and bank the difference:\n" +
		"save up a surplus over the week, spend it on a treat once you have\n" +
		"earned it, and start fresh every seven days.",
	RunE: runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", store.DefaultPath(), "Bank database path")
	rootCmd.PersistentFlags().Float64VarP(&flagTarget, "target", "t", 0, "Daily kcal target (overrides profile)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// openBank is the shared open path used by all commands. The cycle is
// anchored to today on first contact, and the rollover check runs on
// every call after that.
func openBank() (*store.Store, *bank.Bank, error) {
	st, err := store.Open(flagDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening bank database: %w", err)
	}

	b, err := bank.New(st)
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("loading bank state: %w", err)
	}
	if err := b.InitializeCycle(); err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("initializing cycle: %w", err)
	}
	return st, b, nil
}

// dailyTarget resolves the target for today: the --target flag wins,
// then the profile (manual override or derived TDEE), then the default.
func dailyTarget(cfg config.Config) float64 {
	if flagTarget > 0 {
		return flagTarget
	}
	return config.EffectiveTarget(cfg)
}
