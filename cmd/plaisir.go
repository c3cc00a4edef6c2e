package cmd

import (
	"fmt"

	"calbank/internal/bank"
	"calbank/internal/cli"
	"calbank/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var plaisirCmd = &cobra.Command{
	Use:   "plaisir",
	Short: "Check whether you have earned a treat",
	RunE:  runPlaisir,
}

func init() {
	rootCmd.AddCommand(plaisirCmd)
}

func runPlaisir(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	snap := b.Snapshot(dailyTarget(cfg))

	fmt.Println()
	fmt.Println(cli.RenderTitle("PLAISIR"))
	fmt.Println()

	if snap.CanHavePlaisir {
		ok := lipgloss.NewStyle().Foreground(cli.ColorGreen).Bold(true)
		fmt.Printf("  %s\n\n", ok.Render("Unlocked. Enjoy something — you banked for it."))
		fmt.Printf("  Banked balance: %s kcal\n", cli.RenderBalance(snap.TotalBalance))
		fmt.Printf("  Spendable (capped): %s kcal\n\n", cli.RenderBalance(snap.CappedBalance))
		return nil
	}

	locked := lipgloss.NewStyle().Foreground(cli.ColorOrange).Bold(true)
	fmt.Printf("  %s\n\n", locked.Render("Locked."))

	// Both gates must open: enough days into the cycle, and a surplus.
	if snap.DayIndex < bank.PlaisirUnlockDay {
		fmt.Printf("  Day %d of 7 — unlock day is day %d (%s away)\n",
			snap.DayIndex+1, bank.PlaisirUnlockDay+1, cli.FormatDays(snap.DaysUntilPlaisir))
	} else {
		fmt.Printf("  Day gate passed (day %d of 7)\n", snap.DayIndex+1)
	}
	if snap.TotalBalance > 0 {
		fmt.Printf("  Balance gate passed (%s banked)\n", cli.RenderBalance(snap.TotalBalance))
	} else {
		fmt.Printf("  Banked balance is %s — it must be positive\n", cli.RenderBalance(snap.TotalBalance))
	}
	fmt.Println()

	return nil
}
