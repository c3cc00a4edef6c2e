package tui

import (
	"fmt"
	"strconv"
	"strings"

	"calbank/internal/bank"
	"calbank/internal/config"
	"calbank/internal/store"
	"calbank/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues collects the first-run form answers. Inputs stay strings
// until saveSetupConfig parses them, so half-typed numbers never crash
// the form.
type setupValues struct {
	sex          string
	age          string
	height       string
	weight       string
	activity     string
	pace         string
	theme        string
	confirmStart bool
}

// newSetupForm builds the first-run wizard. Profile fields may be left
// blank, in which case the daily target falls back to 2000 kcal until
// the profile is completed in settings.
func newSetupForm(dbPath string, vals *setupValues) *huh.Form {
	if vals.activity == "" {
		vals.activity = "moderate"
	}
	if vals.pace == "" {
		vals.pace = "0.5"
	}
	if vals.theme == "" {
		vals.theme = "flexoki-dark"
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	activityOpts := make([]huh.Option[string], 0, len(config.ActivityLevels()))
	for _, lvl := range config.ActivityLevels() {
		activityOpts = append(activityOpts, huh.NewOption(strings.ReplaceAll(lvl, "_", " "), lvl))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to calbank!").
				Description(fmt.Sprintf("Your ledger lives at %s.\nA few questions derive your daily caloric target.", dbPath)),
			huh.NewSelect[string]().
				Title("Sex").
				Description("Used by the Mifflin-St Jeor BMR formula.").
				Options(
					huh.NewOption("Female", "female"),
					huh.NewOption("Male", "male"),
				).
				Value(&vals.sex),
			huh.NewInput().
				Title("Age").
				Placeholder("30 (blank to skip)").
				CharLimit(3).
				Validate(optionalIntInRange(10, 120)).
				Value(&vals.age),
			huh.NewInput().
				Title("Height (cm)").
				Placeholder("170 (blank to skip)").
				CharLimit(6).
				Validate(optionalFloatInRange(100, 250)).
				Value(&vals.height),
			huh.NewInput().
				Title("Weight (kg)").
				Placeholder("70 (blank to skip)").
				CharLimit(6).
				Validate(optionalFloatInRange(30, 300)).
				Value(&vals.weight),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Activity level").
				Description("Scales BMR up to daily expenditure.").
				Options(activityOpts...).
				Value(&vals.activity),
			huh.NewInput().
				Title("Weekly pace (lbs)").
				Description("Weight loss per week. 0 means maintenance.").
				CharLimit(5).
				Validate(optionalFloatInRange(0, 2)).
				Value(&vals.pace),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
			huh.NewConfirm().
				Title("Lock in today as day 1?").
				Description("Until confirmed, day 1 keeps sliding to today.\nYou can also confirm later with `calbank confirm`.").
				Affirmative("Lock it in").
				Negative("Not yet").
				Value(&vals.confirmStart),
		),
	).WithShowHelp(true)
}

func optionalIntInRange(min, max int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}

func optionalFloatInRange(min, max float64) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if v < min || v > max {
			return fmt.Errorf("must be between %g and %g", min, max)
		}
		return nil
	}
}

// saveSetupConfig persists the form answers and, when asked, locks in
// today as day 1 of the cycle.
func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()
	v := a.setupVals

	if v.sex != "" {
		cfg.Profile.Sex = v.sex
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.age)); err == nil && n > 0 {
		cfg.Profile.Age = n
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(v.height), 64); err == nil && f > 0 {
		cfg.Profile.HeightCM = f
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(v.weight), 64); err == nil && f > 0 {
		cfg.Profile.WeightKG = f
	}
	if v.activity != "" {
		cfg.Profile.Activity = v.activity
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(v.pace), 64); err == nil && f >= 0 {
		cfg.Profile.PaceLbsPerWeek = f
	}
	if v.theme != "" {
		cfg.Appearance.Theme = v.theme
		theme.SetActive(v.theme)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	a.target = config.EffectiveTarget(cfg)

	if v.confirmStart {
		st, err := store.Open(a.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		b, err := bank.New(st)
		if err != nil {
			return err
		}
		if err := b.InitializeCycle(); err != nil {
			return err
		}
		return b.ConfirmStartDay()
	}
	return nil
}
