package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"calbank/internal/cli"
	"calbank/internal/foodapi"

	"github.com/spf13/cobra"
)

var (
	flagFoodBarcode string
	flagFoodGrams   float64
	flagFoodLimit   int
)

var foodCmd = &cobra.Command{
	Use:   "food <query>",
	Short: "Look up calories in the Open Food Facts database",
	Long: "Search Open Food Facts by name, or look up an exact product with\n" +
		"--barcode. Use --grams to scale the result to your portion.",
	Args: cobra.ArbitraryArgs,
	RunE: runFood,
}

func init() {
	foodCmd.Flags().StringVar(&flagFoodBarcode, "barcode", "", "Look up an exact barcode instead of searching")
	foodCmd.Flags().Float64Var(&flagFoodGrams, "grams", 0, "Portion size to scale kcal to")
	foodCmd.Flags().IntVar(&flagFoodLimit, "limit", 8, "Max search results")
	rootCmd.AddCommand(foodCmd)
}

func runFood(_ *cobra.Command, args []string) error {
	client := foodapi.NewClient()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if flagFoodBarcode != "" {
		return lookupBarcode(ctx, client, flagFoodBarcode)
	}

	if len(args) == 0 {
		return errors.New("give a search query or --barcode")
	}
	query := args[0]
	for _, a := range args[1:] {
		query += " " + a
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Searching Open Food Facts...\n")
	}

	products, err := client.Search(ctx, query, flagFoodLimit)
	if err != nil {
		if errors.Is(err, foodapi.ErrRateLimited) {
			return errors.New("rate limited by Open Food Facts — try again in a minute")
		}
		return fmt.Errorf("search failed: %w", err)
	}
	if len(products) == 0 {
		fmt.Printf("\n  Nothing found for %q\n\n", query)
		return nil
	}

	fmt.Println()
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		kcalStr := "?"
		if kcal, ok := p.KcalPer100g(); ok {
			kcalStr = cli.FormatKcal(kcal)
		}
		portion := ""
		if flagFoodGrams > 0 {
			if kcal, ok := p.KcalForGrams(flagFoodGrams); ok {
				portion = cli.FormatKcal(kcal)
			}
		}
		row := []string{p.DisplayName(), kcalStr}
		if flagFoodGrams > 0 {
			row = append(row, portion)
		}
		rows = append(rows, row)
	}

	headers := []string{"Product", "kcal/100g"}
	if flagFoodGrams > 0 {
		headers = append(headers, fmt.Sprintf("kcal/%.0fg", flagFoodGrams))
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Results for %q", query),
		Headers: headers,
		Rows:    rows,
	}))
	fmt.Println("  Log one with: calbank log <slot> \"<name>\" <kcal>")
	fmt.Println()

	return nil
}

func lookupBarcode(ctx context.Context, client *foodapi.Client, barcode string) error {
	p, err := client.Lookup(ctx, barcode)
	if err != nil {
		if errors.Is(err, foodapi.ErrNotFound) {
			return fmt.Errorf("no product for barcode %s", barcode)
		}
		return fmt.Errorf("lookup failed: %w", err)
	}

	fmt.Println()
	fmt.Printf("  %s  (barcode %s)\n", p.DisplayName(), p.Code)
	if kcal, ok := p.KcalPer100g(); ok {
		fmt.Printf("  Energy: %s kcal/100g\n", cli.FormatKcal(kcal))
	}
	if grams, ok := p.ServingGrams(); ok {
		if kcal, ok := p.KcalForGrams(grams); ok {
			fmt.Printf("  Serving: %.0fg (%s kcal)\n", grams, cli.FormatKcal(kcal))
		}
	}
	if flagFoodGrams > 0 {
		if kcal, ok := p.KcalForGrams(flagFoodGrams); ok {
			fmt.Printf("  Your portion: %.0fg (%s kcal)\n", flagFoodGrams, cli.FormatKcal(kcal))
		}
	}
	fmt.Println()

	return nil
}
