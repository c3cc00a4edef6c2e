package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"calbank/internal/cli"
	"calbank/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to calbank!")
	fmt.Println()
	fmt.Println("  A few questions to size your daily caloric target.")
	fmt.Println("  Press Enter to keep the value in [brackets].")
	fmt.Println()

	// 1. Profile
	fmt.Println("  1. Profile")
	fmt.Printf("     Sex (1) male (2) female [%s]\n", orUnset(cfg.Profile.Sex))
	fmt.Print("     > ")
	switch askLine(reader) {
	case "1":
		cfg.Profile.Sex = "male"
	case "2":
		cfg.Profile.Sex = "female"
	}
	cfg.Profile.Age = askInt(reader, "Age", cfg.Profile.Age)
	cfg.Profile.HeightCM = askFloat(reader, "Height (cm)", cfg.Profile.HeightCM)
	cfg.Profile.WeightKG = askFloat(reader, "Weight (kg)", cfg.Profile.WeightKG)
	fmt.Println()

	// 2. Activity level
	fmt.Println("  2. Activity level")
	for i, name := range config.ActivityLevels() {
		marker := ""
		if name == cfg.Profile.Activity {
			marker = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, strings.ReplaceAll(name, "_", " "), marker)
	}
	fmt.Print("     > ")
	if n, err := strconv.Atoi(askLine(reader)); err == nil && n >= 1 && n <= len(config.ActivityLevels()) {
		cfg.Profile.Activity = config.ActivityLevels()[n-1]
	}
	fmt.Println()

	// 3. Weekly pace
	fmt.Println("  3. Weight loss pace (lbs/week)")
	fmt.Println("     0 holds maintenance; 0.25 to 2 cuts.")
	cfg.Profile.PaceLbsPerWeek = askFloatAllowZero(reader, "Pace", cfg.Profile.PaceLbsPerWeek)
	fmt.Println()

	// 4. Daily target
	fmt.Println("  4. Daily target")
	if cfg.Profile.Complete() {
		fmt.Printf("     BMR %s kcal, TDEE %s kcal\n",
			cli.FormatKcal(config.BMR(cfg.Profile)), cli.FormatKcal(config.TDEE(cfg.Profile)))
		fmt.Printf("     Derived target: %s kcal/day\n", cli.FormatKcal(config.DerivedTarget(cfg.Profile)))
		fmt.Println("     Enter a number to override, or press Enter to use it.")
	} else {
		fmt.Println("     Profile incomplete, so the default is 2,000 kcal/day.")
		fmt.Println("     Enter a number to set your own target.")
	}
	fmt.Print("     > ")
	if v, err := strconv.ParseFloat(askLine(reader), 64); err == nil && v > 0 {
		cfg.Profile.TargetKcal = &v
	} else if cfg.Profile.Complete() {
		cfg.Profile.TargetKcal = nil
	}
	fmt.Println()

	// 5. Color theme
	fmt.Println("  5. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	switch askLine(reader) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Printf("  Daily target: %s kcal\n", cli.FormatKcal(config.EffectiveTarget(cfg)))
	fmt.Println()

	// 6. Start day
	st, b, err := openBank()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if b.IsFirstTimeSetup() {
		fmt.Println("  6. Cycle start day")
		fmt.Printf("     The 7-day cycle starts %s. Lock it in? (y/N)\n", cli.FormatDate(b.StartDate()))
		fmt.Print("     > ")
		if strings.EqualFold(askLine(reader), "y") {
			if err := b.ConfirmStartDay(); err != nil {
				return fmt.Errorf("confirming start day: %w", err)
			}
			fmt.Println("     Confirmed.")
		} else {
			fmt.Println("     Left open. Move it with `calbank restart`, lock it with `calbank confirm`.")
		}
		fmt.Println()
	}

	fmt.Println("  Run `calbank setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func askLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func askInt(r *bufio.Reader, label string, current int) int {
	fmt.Printf("     %s [%s]\n", label, orUnset(intInput(current)))
	fmt.Print("     > ")
	if n, err := strconv.Atoi(askLine(r)); err == nil && n > 0 {
		return n
	}
	return current
}

func askFloat(r *bufio.Reader, label string, current float64) float64 {
	fmt.Printf("     %s [%s]\n", label, orUnset(floatInput(current)))
	fmt.Print("     > ")
	if v, err := strconv.ParseFloat(askLine(r), 64); err == nil && v > 0 {
		return v
	}
	return current
}

// askFloatAllowZero accepts 0 as a deliberate answer, so only a blank or
// unparsable line keeps the current value.
func askFloatAllowZero(r *bufio.Reader, label string, current float64) float64 {
	fmt.Printf("     %s [%s]\n", label, floatInput(current))
	fmt.Print("     > ")
	if v, err := strconv.ParseFloat(askLine(r), 64); err == nil && v >= 0 {
		return v
	}
	return current
}

func orUnset(s string) string {
	if s == "" {
		return "unset"
	}
	return s
}

func intInput(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func floatInput(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
