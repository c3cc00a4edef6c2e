package cmd

import (
	"fmt"
	"os"
	"time"

	"calbank/internal/cli"
	"calbank/internal/config"
	"calbank/internal/source"

	"github.com/spf13/cobra"
)

var flagImportDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import meals from JSONL export files",
	Long: "Import meal entries from JSONL exports (one JSON object per line:\n" +
		`{"date":"2026-03-02","name":"pasta","kcal":650,"meal":"lunch"}).` + "\n" +
		"Only entries inside the current cycle window are imported; the rest\n" +
		"are skipped so old exports cannot distort the bank.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Parse and report without writing")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, _ := config.Load()

	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", args[0])
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
	}

	result, err := source.Load(args[0], progressFn)
	if err != nil {
		return err
	}
	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %d files, %d meals    \n", result.ParsedFiles, len(result.Meals))
	}

	if result.TotalFiles == 0 {
		fmt.Printf("\n  No .jsonl files under %s\n\n", args[0])
		return nil
	}

	today := time.Now().Format("2006-01-02")
	cycleStart := b.StartDate()
	defaultTarget := dailyTarget(cfg)

	var imported, outOfWindow int
	for _, meal := range result.Meals {
		if meal.Date < cycleStart || meal.Date > today {
			outOfWindow++
			continue
		}
		if flagImportDryRun {
			imported++
			continue
		}

		target := defaultTarget
		if t, ok := result.Targets[meal.Date]; ok {
			target = t
		}
		meal.LoggedAt = time.Now().UTC()
		if _, err := b.LogMeal(meal, target); err != nil {
			return fmt.Errorf("importing %s %q: %w", meal.Date, meal.Name, err)
		}
		imported++
	}

	fmt.Println()
	verb := "Imported"
	if flagImportDryRun {
		verb = "Would import"
	}
	fmt.Printf("  %s %d meals from %d files\n", verb, imported, result.ParsedFiles)
	if outOfWindow > 0 {
		fmt.Printf("  Skipped %d entries outside the cycle window (%s .. %s)\n",
			outOfWindow, cycleStart, today)
	}
	if result.ParseErrors > 0 {
		fmt.Printf("  Skipped %d malformed lines\n", result.ParseErrors)
	}
	if result.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d files could not be read\n", result.FileErrors)
	}
	if !flagImportDryRun && imported > 0 {
		fmt.Printf("  Banked balance is now %s\n", cli.RenderBalance(b.TotalBalance()))
	}
	fmt.Println()

	return nil
}
