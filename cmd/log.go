package cmd

import (
	"fmt"
	"strconv"
	"time"

	"calbank/internal/cli"
	"calbank/internal/config"
	"calbank/internal/mealplan"
	"calbank/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagLogDate  string
	flagLogTotal float64
)

var logCmd = &cobra.Command{
	Use:   "log [slot] <name> <kcal>",
	Short: "Log a meal (or set a whole day with --total)",
	Long: "Log a meal into today's ledger. The slot (breakfast, lunch, snack,\n" +
		"dinner) can be omitted; it is then inferred from the time of day.\n" +
		"Use --total to set a day's consumed kcal directly, without a meal entry.",
	Args: cobra.RangeArgs(0, 3),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&flagLogDate, "date", "", "Day to log to (YYYY-MM-DD, default today)")
	logCmd.Flags().Float64Var(&flagLogTotal, "total", 0, "Set the day's total consumed kcal directly")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, _ := config.Load()

	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	date, err := resolveLogDate(b.StartDate(), flagLogDate)
	if err != nil {
		return err
	}
	target := dailyTarget(cfg)

	if cmd.Flags().Changed("total") {
		if len(args) > 0 {
			return fmt.Errorf("--total replaces the whole day; drop the meal arguments")
		}
		if flagLogTotal < 0 {
			return fmt.Errorf("consumed kcal must be >= 0")
		}
		if err := b.UpdateDailyBalance(date, flagLogTotal, target); err != nil {
			return fmt.Errorf("updating %s: %w", date, err)
		}
		fmt.Printf("\n  %s set to %s kcal against %s (balance %s)\n\n",
			cli.FormatDate(date), cli.FormatKcal(flagLogTotal),
			cli.FormatKcal(target), cli.RenderBalance(target-flagLogTotal))
		return nil
	}

	if len(args) < 2 {
		return fmt.Errorf("need <name> <kcal>, with an optional leading slot")
	}

	var (
		slot    mealplan.Slot
		name    string
		kcalArg string
	)
	if len(args) == 3 {
		slot, err = mealplan.ParseSlot(args[0])
		if err != nil {
			return err
		}
		name, kcalArg = args[1], args[2]
	} else {
		slot = mealplan.SlotByHour(time.Now().Hour())
		name, kcalArg = args[0], args[1]
	}

	kcal, err := strconv.ParseFloat(kcalArg, 64)
	if err != nil || kcal < 0 {
		return fmt.Errorf("bad kcal value %q", kcalArg)
	}

	day, err := b.LogMeal(model.MealEntry{
		Date:     date,
		Slot:     string(slot),
		Name:     name,
		Kcal:     kcal,
		LoggedAt: time.Now().UTC(),
	}, target)
	if err != nil {
		return fmt.Errorf("logging meal: %w", err)
	}

	fmt.Printf("\n  Logged %s %q (%s kcal)\n", slot, name, cli.FormatKcal(kcal))
	fmt.Printf("  %s: %s consumed, balance %s\n",
		cli.FormatDate(date), cli.FormatKcal(day.Consumed), cli.RenderBalance(day.Balance))
	if !mealplan.WithinBudget(mealKcalInSlot(st, date, slot), day.Target, slot) {
		fmt.Printf("  Heads up: %s is past its %s kcal budget\n",
			slot, cli.FormatKcal(mealplan.BudgetFor(slot, day.Target)))
	}
	fmt.Println()

	return nil
}

// resolveLogDate validates an explicit date against the cycle window.
// Future days and days before the cycle start never enter the ledger.
func resolveLogDate(cycleStart, raw string) (string, error) {
	today := time.Now().Format("2006-01-02")
	if raw == "" {
		return today, nil
	}

	d, err := time.Parse("2006-01-02", raw)
	if err != nil || d.Format("2006-01-02") != raw {
		return "", fmt.Errorf("bad date %q (want YYYY-MM-DD)", raw)
	}
	if raw > today {
		return "", fmt.Errorf("cannot log the future (%s)", raw)
	}
	if cycleStart != "" && raw < cycleStart {
		return "", fmt.Errorf("%s precedes the current cycle (started %s)", raw, cycleStart)
	}
	return raw, nil
}
