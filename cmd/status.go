package cmd

import (
	"fmt"

	"calbank/internal/cli"
	"calbank/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the bank balance and today's progress",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	snap := b.Snapshot(dailyTarget(cfg))

	fmt.Println()
	fmt.Println(cli.RenderTitle("CALORIC BANK"))
	fmt.Println()

	if snap.FirstTimeSetup {
		fmt.Println("  Cycle anchored to today. If your week starts on a different")
		fmt.Println("  day, move it now with `calbank restart` — once you run")
		fmt.Println("  `calbank confirm` the start day is locked in.")
		fmt.Println()
	}

	// Today
	target := snap.TodayTarget
	if target <= 0 {
		target = snap.DailyTarget
	}
	fmt.Printf("  %s  day %d of 7  (%s)\n",
		cli.FormatDate(snap.Date), snap.DayIndex+1, cli.FormatDate(snap.CycleStart))
	fmt.Printf("  %s\n\n", cli.RenderBudgetBar(snap.TodayConsumed, target, 30))

	plaisir := "locked"
	if snap.CanHavePlaisir {
		plaisir = "unlocked"
	} else if snap.DaysUntilPlaisir > 0 {
		plaisir = fmt.Sprintf("locked (%s to go)", cli.FormatDays(snap.DaysUntilPlaisir))
	}

	rows := [][]string{
		{"Banked balance", cli.RenderBalance(snap.TotalBalance)},
		{"Capped balance", cli.RenderBalance(snap.CappedBalance)},
		{"Max credit", cli.FormatKcal(snap.MaxCredit)},
		{"---"},
		{"Plaisir", plaisir},
		{"Days over limit", fmt.Sprintf("%d", snap.DaysOverLimit)},
		{"New week", cli.FormatDays(snap.DaysUntilNewWeek)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if snap.DaysOverLimit > 0 {
		warn := lipgloss.NewStyle().Foreground(cli.ColorOrange)
		fmt.Printf("  %s\n", warn.Render(
			fmt.Sprintf("%d day(s) swung past the 10%% cap — see `calbank week`", snap.DaysOverLimit)))
	}
	fmt.Println()

	return nil
}
