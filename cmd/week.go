package cmd

import (
	"fmt"
	"time"

	"calbank/internal/bank"
	"calbank/internal/cli"
	"calbank/internal/config"

	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the current cycle day by day",
	RunE:  runWeek,
}

func init() {
	rootCmd.AddCommand(weekCmd)
}

func runWeek(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	snap := b.Snapshot(dailyTarget(cfg))

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WEEK  started %s", cli.FormatDate(snap.CycleStart))))
	fmt.Println()

	if len(snap.Days) == 0 {
		fmt.Println("  Nothing logged this cycle yet.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(snap.Days)+2)
	balances := make([]float64, 0, len(snap.Days))
	for _, d := range snap.Days {
		marker := ""
		if d.Over {
			marker = "over"
		}
		if d.IsToday {
			marker = "today"
		}
		rows = append(rows, []string{
			d.Date,
			shortWeekday(d.Date),
			cli.FormatKcal(d.Consumed),
			cli.FormatKcal(d.Target),
			cli.FormatBalance(d.Balance),
			cli.FormatBalance(d.Capped),
			marker,
		})
		balances = append(balances, d.Balance)
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"BANKED", "", "", "",
		cli.FormatBalance(snap.TotalBalance),
		cli.FormatBalance(snap.CappedBalance),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Eaten", "Target", "Balance", "Capped", ""},
		Rows:    rows,
	}))

	fmt.Printf("  Balance trend: %s\n", cli.RenderSparkline(balances))
	fmt.Printf("  Credit ceiling: %s kcal (%.0f%% of %d bankable days)\n\n",
		cli.FormatKcal(snap.MaxCredit),
		bank.MaxDailyVariancePercent*100,
		bank.BankableDays)

	return nil
}

func shortWeekday(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "???"
	}
	return cli.FormatDayOfWeek(int(t.Weekday()))
}
