package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"calbank/internal/cli"
	"calbank/internal/config"
	"calbank/internal/tui/components"
	"calbank/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldTarget
	settingsFieldActivity
	settingsFieldPace
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark, catppuccin-mocha, tokyo-night, terminal"
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldTarget:
		ti.Placeholder = "1800 (kcal/day, empty derives from profile)"
		if cfg.Profile.TargetKcal != nil {
			ti.SetValue(fmt.Sprintf("%.0f", *cfg.Profile.TargetKcal))
		}
	case settingsFieldActivity:
		ti.Placeholder = strings.Join(config.ActivityLevels(), ", ")
		ti.SetValue(cfg.Profile.Activity)
	case settingsFieldPace:
		ti.Placeholder = "0.5 (lbs/week, 0 for maintenance)"
		ti.SetValue(strconv.FormatFloat(cfg.Profile.PaceLbsPerWeek, 'f', -1, 64))
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoRefresh))
	case settingsFieldRefreshInterval:
		ti.Placeholder = "30 (seconds, minimum 10)"
		// Prefill with the effective value, matching the display row.
		intervalSec := int(a.refreshInterval.Seconds())
		if intervalSec < 10 {
			intervalSec = 30
		}
		ti.SetValue(strconv.Itoa(intervalSec))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		if a.settings.saved {
			// Target, activity, and pace all feed the snapshot, so reload.
			a.refreshing = true
			return a, a.refreshDataCmd()
		}
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		// Validate theme name
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if found {
			cfg.Appearance.Theme = val
			theme.SetActive(val)
		}
	case settingsFieldTarget:
		if val == "" {
			cfg.Profile.TargetKcal = nil
		} else {
			var v float64
			if _, err := fmt.Sscanf(val, "%f", &v); err == nil && v > 0 {
				cfg.Profile.TargetKcal = &v
			}
		}
		a.target = config.EffectiveTarget(cfg)
	case settingsFieldActivity:
		for _, lvl := range config.ActivityLevels() {
			if lvl == val {
				cfg.Profile.Activity = val
				break
			}
		}
		a.target = config.EffectiveTarget(cfg)
	case settingsFieldPace:
		var p float64
		if _, err := fmt.Sscanf(val, "%f", &p); err == nil && p >= 0 {
			cfg.Profile.PaceLbsPerWeek = p
		}
		a.target = config.EffectiveTarget(cfg)
	case settingsFieldAutoRefresh:
		cfg.TUI.AutoRefresh = val == "true" || val == "1" || val == "yes"
		a.autoRefresh = cfg.TUI.AutoRefresh
	case settingsFieldRefreshInterval:
		var interval int
		if _, err := fmt.Sscanf(val, "%d", &interval); err == nil && interval >= 10 {
			cfg.TUI.RefreshIntervalSec = interval
			a.refreshInterval = time.Duration(interval) * time.Second
		}
	}

	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	targetDisplay := "(default: 2,000 kcal)"
	if cfg.Profile.TargetKcal != nil {
		targetDisplay = fmt.Sprintf("%s kcal", cli.FormatKcal(*cfg.Profile.TargetKcal))
	} else if cfg.Profile.Complete() {
		targetDisplay = fmt.Sprintf("(derived: %s kcal)", cli.FormatKcal(config.DerivedTarget(cfg.Profile)))
	}

	paceDisplay := "maintenance"
	if cfg.Profile.PaceLbsPerWeek > 0 {
		paceDisplay = fmt.Sprintf("%s lbs/week", strconv.FormatFloat(cfg.Profile.PaceLbsPerWeek, 'f', -1, 64))
	}

	// Auto-refresh and interval display live App state, not the file: the
	// R key toggles without a round trip through config.
	refreshIntervalSec := int(a.refreshInterval.Seconds())
	if refreshIntervalSec < 10 {
		refreshIntervalSec = 30 // match the effective default
	}

	fields := []field{
		{"Theme", cfg.Appearance.Theme},
		{"Daily Target", targetDisplay},
		{"Activity Level", cfg.Profile.Activity},
		{"Weekly Pace", paceDisplay},
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh Interval", fmt.Sprintf("%ds", refreshIntervalSec)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			// Selected row with marker and highlight
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			// Use lipgloss.Width() for correct visual width calculation
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			// Normal row
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// General info card
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Database:     ") + valueStyle.Render(a.dbPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Meals today:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.meals)))) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:    ") + valueStyle.Render(fmt.Sprintf("%dms", a.loadTime.Milliseconds())))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
