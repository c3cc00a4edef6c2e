package cmd

import (
	"fmt"

	"calbank/internal/cli"

	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Move the cycle start to today (before confirming only)",
	Long: "Re-anchor the 7-day cycle to today and clear the ledger. This is\n" +
		"the do-over for picking the wrong start day; once the start day is\n" +
		"confirmed it does nothing, and only the weekly rollover resets.",
	RunE: runRestart,
}

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Lock in the cycle start day",
	RunE:  runConfirm,
}

func init() {
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(confirmCmd)
}

func runRestart(_ *cobra.Command, _ []string) error {
	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if !b.IsFirstTimeSetup() {
		fmt.Println("\n  Start day already confirmed — restart is retired.")
		fmt.Println("  The cycle resets on its own after day 7.")
		fmt.Printf("  Next reset: %s\n\n", cli.FormatDays(b.DaysUntilNewWeek()))
		return nil
	}

	if err := b.ResetToToday(); err != nil {
		return fmt.Errorf("restarting cycle: %w", err)
	}

	fmt.Printf("\n  Cycle restarted — day 1 is now %s.\n", cli.FormatDate(b.StartDate()))
	fmt.Println("  Happy with it? Lock it in: calbank confirm")
	fmt.Println()
	return nil
}

func runConfirm(_ *cobra.Command, _ []string) error {
	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	already := !b.IsFirstTimeSetup()
	if err := b.ConfirmStartDay(); err != nil {
		return fmt.Errorf("confirming start day: %w", err)
	}

	if already {
		fmt.Printf("\n  Start day was already confirmed (%s).\n\n", cli.FormatDate(b.StartDate()))
		return nil
	}

	fmt.Printf("\n  Start day confirmed: %s.\n", cli.FormatDate(b.StartDate()))
	fmt.Println("  From here the week rolls over by itself every 7 days.")
	fmt.Println()
	return nil
}
