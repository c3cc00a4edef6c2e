package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"calbank/internal/cli"
	"calbank/internal/config"
	"calbank/internal/mealplan"
	"calbank/internal/store"

	"github.com/spf13/cobra"
)

var flagMealsDate string

var mealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "List a day's meals against their slot budgets",
	RunE:  runMeals,
}

var mealsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a logged meal and re-total its day",
	Args:  cobra.ExactArgs(1),
	RunE:  runMealsRm,
}

func init() {
	mealsCmd.PersistentFlags().StringVar(&flagMealsDate, "date", "", "Day to show (YYYY-MM-DD, default today)")
	mealsCmd.AddCommand(mealsRmCmd)
	rootCmd.AddCommand(mealsCmd)
}

func runMeals(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	date := flagMealsDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if d, err := time.Parse("2006-01-02", date); err != nil || d.Format("2006-01-02") != date {
		return fmt.Errorf("bad date %q (want YYYY-MM-DD)", date)
	}

	meals, err := st.MealsForDate(date)
	if err != nil {
		return fmt.Errorf("loading meals: %w", err)
	}

	target := dailyTarget(cfg)
	for _, rec := range b.Ledger() {
		if rec.Date == date && rec.Target > 0 {
			target = rec.Target
		}
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MEALS  %s", cli.FormatDate(date))))
	fmt.Println()

	if len(meals) == 0 {
		fmt.Println("  No meals logged.")
		fmt.Println("  Log one with: calbank log lunch \"leek soup\" 250")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(meals))
	for _, m := range meals {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.Slot,
			m.Name,
			cli.FormatKcal(m.Kcal),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Slot", "Meal", "Kcal"},
		Rows:    rows,
	}))

	// Slot budgets
	fmt.Println("  Slot budgets")
	for _, budget := range mealplan.Budgets(target) {
		var consumed float64
		for _, m := range meals {
			if m.Slot == string(budget.Slot) {
				consumed += m.Kcal
			}
		}
		fmt.Printf("  %-9s %s\n", budget.Slot, cli.RenderBudgetBar(consumed, budget.Kcal, 20))
	}
	fmt.Println()

	return nil
}

func runMealsRm(_ *cobra.Command, args []string) error {
	cfg, _ := config.Load()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad meal id %q", args[0])
	}

	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	meal, err := st.MealByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no meal with id %d", id)
		}
		return fmt.Errorf("looking up meal: %w", err)
	}

	day, err := b.RemoveMeal(id, meal.Date, dailyTarget(cfg))
	if err != nil {
		return fmt.Errorf("removing meal: %w", err)
	}

	fmt.Printf("\n  Removed %s %q (%s kcal)\n", meal.Slot, meal.Name, cli.FormatKcal(meal.Kcal))
	fmt.Printf("  %s: %s consumed, balance %s\n\n",
		cli.FormatDate(meal.Date), cli.FormatKcal(day.Consumed), cli.RenderBalance(day.Balance))

	return nil
}

// mealKcalInSlot sums a day's logged calories for one slot.
func mealKcalInSlot(st *store.Store, date string, slot mealplan.Slot) float64 {
	meals, err := st.MealsForDate(date)
	if err != nil {
		return 0
	}
	var total float64
	for _, m := range meals {
		if m.Slot == string(slot) {
			total += m.Kcal
		}
	}
	return total
}
