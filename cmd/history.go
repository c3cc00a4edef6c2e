package cmd

import (
	"fmt"
	"strconv"

	"calbank/internal/cli"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show archived cycles",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	st, _, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	archives, err := st.ListArchives()
	if err != nil {
		return fmt.Errorf("loading archives: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CYCLE HISTORY"))
	fmt.Println()

	if len(archives) == 0 {
		fmt.Println("  No completed cycles yet. Archives appear after the first")
		fmt.Println("  7-day rollover.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(archives))
	for _, a := range archives {
		rows = append(rows, []string{
			a.StartDate + " .. " + a.EndDate,
			strconv.Itoa(a.DaysLogged),
			cli.FormatBalance(a.TotalBalance),
			cli.FormatBalance(a.CappedBalance),
			strconv.Itoa(a.DaysOverLimit),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Cycle", "Logged", "Balance", "Capped", "Over"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
