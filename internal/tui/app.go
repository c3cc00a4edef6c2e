// Package tui provides the interactive Bubble Tea dashboard for calbank.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"calbank/internal/bank"
	"calbank/internal/cli"
	"calbank/internal/config"
	"calbank/internal/daemon"
	"calbank/internal/model"
	"calbank/internal/store"
	"calbank/internal/tui/components"
	"calbank/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the initial ledger read finishes.
type DataLoadedMsg struct {
	Snap     model.BankSnapshot
	Meals    []model.MealEntry
	Archives []model.CycleArchive
	LoadTime time.Duration
	Err      error
}

// RefreshDataMsg is sent when a background ledger refresh completes.
type RefreshDataMsg struct {
	Snap     model.BankSnapshot
	Meals    []model.MealEntry
	Archives []model.CycleArchive
	LoadTime time.Duration
	Err      error
}

// DaemonStatusMsg carries the result of a daemon probe. A nil Status
// means the daemon is unreachable.
type DaemonStatusMsg struct {
	Status *daemon.Status
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	snap     model.BankSnapshot
	meals    []model.MealEntry
	archives []model.CycleArchive
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// Daemon probe state
	daemonStatus   *daemon.Status
	daemonFetching bool
	daemonTicks    int // counts ticks between probes

	// UI state
	width         int
	height        int
	activeTab     int
	showHelp      bool
	historyOffset int

	// Per-tab state
	mealsState mealsState
	settings   settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading
	spinner spinner.Model

	// Ledger location and effective daily target
	dbPath string
	target float64
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height

	// Daemon probe cadence: 120 ticks at 250ms is 30 seconds.
	daemonProbeTicks = 120
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(dbPath string, target float64, cfg config.Config) App {
	needSetup := !config.Exists()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	refreshInterval := time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval < 10*time.Second {
		refreshInterval = 30 * time.Second // minimum 10s, default 30s
	}

	return App{
		dbPath:          dbPath,
		target:          target,
		needSetup:       needSetup,
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		spinner:         sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion, // Enable mouse support
		loadDataCmd(a.dbPath, a.target),
		a.spinner.Tick,
		tickCmd(),
	}

	// Probe the daemon once at startup if an address is configured
	cfg := loadConfigOrDefault()
	if cfg.Daemon.Addr != "" {
		cmds = append(cmds, probeDaemonCmd(cfg.Daemon.Addr))
	}

	return tea.Batch(cmds...)
}

// clampCursors keeps per-tab cursors inside the freshly loaded data.
func (a *App) clampCursors() {
	if a.mealsState.cursor >= len(a.meals) {
		a.mealsState.cursor = len(a.meals) - 1
	}
	if a.mealsState.cursor < 0 {
		a.mealsState.cursor = 0
	}
	if a.mealsState.offset > a.mealsState.cursor {
		a.mealsState.offset = a.mealsState.cursor
	}
	if a.historyOffset >= len(a.archives) {
		a.historyOffset = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to setup form if active
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			switch a.activeTab {
			case 2:
				if a.mealsState.cursor > 0 {
					a.mealsState.cursor--
				}
			case 3:
				if a.historyOffset > 0 {
					a.historyOffset--
				}
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			switch a.activeTab {
			case 2:
				if a.mealsState.cursor < len(a.meals)-1 {
					a.mealsState.cursor++
				}
			case 3:
				if a.historyOffset < len(a.archives)-1 {
					a.historyOffset++
				}
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Check if click is in tab bar area (first 2 lines)
			if msg.Y <= 1 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == 4 && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Meals tab has its own keybindings
		if a.activeTab == 2 {
			switch key {
			case "j", "down":
				if a.mealsState.cursor < len(a.meals)-1 {
					a.mealsState.cursor++
				}
				return a, nil
			case "k", "up":
				if a.mealsState.cursor > 0 {
					a.mealsState.cursor--
				}
				return a, nil
			case "g":
				a.mealsState.cursor = 0
				a.mealsState.offset = 0
				return a, nil
			case "G":
				a.mealsState.cursor = len(a.meals) - 1
				if a.mealsState.cursor < 0 {
					a.mealsState.cursor = 0
				}
				return a, nil
			case "d":
				if len(a.meals) == 0 || a.refreshing {
					return a, nil
				}
				id := a.meals[a.mealsState.cursor].ID
				a.refreshing = true
				return a, a.deleteMealCmd(id)
			}
		}

		// History tab scroll
		if a.activeTab == 3 {
			switch key {
			case "j", "down":
				if a.historyOffset < len(a.archives)-1 {
					a.historyOffset++
				}
				return a, nil
			case "k", "up":
				if a.historyOffset > 0 {
					a.historyOffset--
				}
				return a, nil
			case "g":
				a.historyOffset = 0
				return a, nil
			}
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == 4 {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		// Global quit
		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, a.refreshDataCmd()
		}

		// Toggle auto-refresh
		if key == "R" {
			a.autoRefresh = !a.autoRefresh
			// Persist to config (best-effort, ignore errors)
			cfg := loadConfigOrDefault()
			cfg.TUI.AutoRefresh = a.autoRefresh
			_ = config.Save(cfg)
			return a, nil
		}

		// Tab navigation
		switch key {
		case "o":
			a.activeTab = 0
		case "w":
			a.activeTab = 1
		case "m":
			a.activeTab = 2
		case "h":
			a.activeTab = 3
		case "x":
			a.activeTab = 4
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case DataLoadedMsg:
		a.snap = msg.Snap
		a.meals = msg.Meals
		a.archives = msg.Archives
		a.loaded = true
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.clampCursors()

		// Activate first-run setup after data loads
		if a.needSetup {
			a.setupForm = newSetupForm(a.dbPath, &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}

		return a, nil

	case DaemonStatusMsg:
		a.daemonStatus = msg.Status
		a.daemonFetching = false
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		a.daemonTicks++

		cmds := []tea.Cmd{tickCmd()}

		// Periodic daemon probe
		if a.loaded && !a.daemonFetching && a.daemonTicks >= daemonProbeTicks {
			a.daemonTicks = 0
			cfg := loadConfigOrDefault()
			if cfg.Daemon.Addr != "" {
				a.daemonFetching = true
				cmds = append(cmds, probeDaemonCmd(cfg.Daemon.Addr))
			}
		}

		// Auto-refresh ledger data
		if a.loaded && a.autoRefresh && !a.refreshing {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, a.refreshDataCmd())
			}
		}

		return a, tea.Batch(cmds...)

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Err == nil {
			a.snap = msg.Snap
			a.meals = msg.Meals
			a.archives = msg.Archives
			a.loadTime = msg.LoadTime
			a.loadErr = nil
			a.clampCursors()
		} else if a.loadErr != nil {
			// Only surface refresh errors when there is no good data to show.
			a.loadErr = msg.Err
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		// The target may have changed, so rebuild the snapshot.
		a.refreshing = true
		return a, a.refreshDataCmd()
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  calbank needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	// Polished loading card with accent border
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ calbank"))
	b.WriteString(subtitleStyle.Render(" · Caloric Bank"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Opening ledger..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	// Polished help overlay with accent border
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o w m h x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"g G", "First / Last entry"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"Enter", "Edit setting / Confirm"},
		{"Esc", "Back / Cancel"},
		{"d", "Delete selected meal"},
		{"r", "Refresh ledger"},
		{"R", "Toggle auto-refresh"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + context pill)
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	pillStr := pillStyle.Render(" ") +
		pillAccentStyle.Render(fmt.Sprintf("day %d/7", a.snap.DayIndex+1))
	pillStr += pillStyle.Render(" │ ") + pillAccentStyle.Render(cli.FormatDate(a.snap.Date))
	pillStr += pillStyle.Render(" │ ") + pillAccentStyle.Render(cli.FormatKcal(a.target)+" kcal/day")
	if a.snap.FirstTimeSetup {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)
		pillStr += pillStyle.Render(" │ ") + warnStyle.Render("start unconfirmed")
	}
	pillStr += pillStyle.Render(" ")

	// Pad context line to full width
	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) +
		pillRowStyle.Render(pillStr)

	// 2. Render status bar
	dataAge := fmt.Sprintf("%.0fs ago", time.Since(a.lastRefresh).Seconds())
	statusBar := components.RenderStatusBar(w, dataAge, a.daemonStatus != nil, a.refreshing, a.autoRefresh)

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content
	var content string
	if a.loadErr != nil {
		content = a.renderLoadError(cw)
	} else {
		switch a.activeTab {
		case 0:
			content = a.renderOverviewTab(cw)
		case 1:
			content = a.renderWeekTab(cw)
		case 2:
			content = a.renderMealsTab(cw, contentH)
		case 3:
			content = a.renderHistoryTab(cw, contentH)
		case 4:
			content = a.renderSettingsTab(cw)
		}
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Ensure entire terminal is filled with background
	// This handles any edge cases where the calculated heights don't perfectly match
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderLoadError(cw int) string {
	t := theme.Active
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := warnStyle.Render(fmt.Sprintf("Could not read the ledger: %s", a.loadErr)) +
		"\n\n" + mutedStyle.Render("Press r to retry.")
	return components.ContentCard("Ledger unavailable", body, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// readLedger opens the store, applies any pending rollover, and builds
// the full read model for the dashboard.
func readLedger(dbPath string, target float64) (model.BankSnapshot, []model.MealEntry, []model.CycleArchive, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return model.BankSnapshot{}, nil, nil, err
	}
	defer st.Close()

	b, err := bank.New(st)
	if err != nil {
		return model.BankSnapshot{}, nil, nil, err
	}
	if err := b.InitializeCycle(); err != nil {
		return model.BankSnapshot{}, nil, nil, err
	}

	snap := b.Snapshot(target)
	meals, err := st.MealsForDate(snap.Date)
	if err != nil {
		return snap, nil, nil, err
	}
	archives, err := st.ListArchives()
	if err != nil {
		return snap, meals, nil, err
	}
	return snap, meals, archives, nil
}

// loadDataCmd performs the initial ledger read in a background command.
func loadDataCmd(dbPath string, target float64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, meals, archives, err := readLedger(dbPath, target)
		return DataLoadedMsg{
			Snap:     snap,
			Meals:    meals,
			Archives: archives,
			LoadTime: time.Since(start),
			Err:      err,
		}
	}
}

// refreshDataCmd re-reads the ledger in the background.
func (a App) refreshDataCmd() tea.Cmd {
	dbPath, target := a.dbPath, a.target
	return func() tea.Msg {
		start := time.Now()
		snap, meals, archives, err := readLedger(dbPath, target)
		return RefreshDataMsg{
			Snap:     snap,
			Meals:    meals,
			Archives: archives,
			LoadTime: time.Since(start),
			Err:      err,
		}
	}
}

// deleteMealCmd removes a meal, re-rolls that day's balance, and returns
// fresh data in one store session.
func (a App) deleteMealCmd(id int64) tea.Cmd {
	dbPath, target := a.dbPath, a.target
	return func() tea.Msg {
		start := time.Now()

		st, err := store.Open(dbPath)
		if err != nil {
			return RefreshDataMsg{LoadTime: time.Since(start), Err: err}
		}
		defer st.Close()

		b, err := bank.New(st)
		if err != nil {
			return RefreshDataMsg{LoadTime: time.Since(start), Err: err}
		}
		m, err := st.MealByID(id)
		if err != nil {
			return RefreshDataMsg{LoadTime: time.Since(start), Err: err}
		}
		if _, err := b.RemoveMeal(id, m.Date, target); err != nil {
			return RefreshDataMsg{LoadTime: time.Since(start), Err: err}
		}

		snap := b.Snapshot(target)
		meals, err := st.MealsForDate(snap.Date)
		if err != nil {
			return RefreshDataMsg{LoadTime: time.Since(start), Err: err}
		}
		archives, err := st.ListArchives()
		if err != nil {
			return RefreshDataMsg{LoadTime: time.Since(start), Err: err}
		}
		return RefreshDataMsg{
			Snap:     snap,
			Meals:    meals,
			Archives: archives,
			LoadTime: time.Since(start),
		}
	}
}

// probeDaemonCmd checks whether the background daemon is serving status.
func probeDaemonCmd(addr string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/status", nil)
		if err != nil {
			return DaemonStatusMsg{}
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return DaemonStatusMsg{}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return DaemonStatusMsg{}
		}

		var st daemon.Status
		if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
			return DaemonStatusMsg{}
		}
		return DaemonStatusMsg{Status: &st}
	}
}

// shortDay maps a full weekday name to its three-letter chart label.
func shortDay(weekday string) string {
	if len(weekday) > 3 {
		return weekday[:3]
	}
	return weekday
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		// Use PlaceHorizontal to ensure proper width and background fill
		// This is more reliable than just Background().Render(spaces)
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		// Must match RenderTabBar's visual width calculation exactly.
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
