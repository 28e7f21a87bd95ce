package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/sim"
	"github.com/vovakirdan/synclab/internal/storage"
)

// footerHeight is the number of rows below the scenario view.
const footerHeight = 2

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for one mounted scenario.
// It owns the tick timer and only ever talks to the scenario through
// Step, Control and Reset.
type Model struct {
	scenario   registry.Scenario
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	speed      config.SpeedPreset
	resetSpeed float64 // Speed multiplier the scenario was last reset with
	fixedSeed  bool
	session    string
	ticker     Ticker
	keys       KeyMap
	help       help.Model
	flash      string
	saved      bool // Whether the current run has been recorded
	standalone bool
	quitting   bool
	backToMenu bool
}

// ModelOptions tune a scenario model.
type ModelOptions struct {
	Speed   config.SpeedPreset
	Session string // Recorded with each run; "local" when empty
	// Standalone models quit the program on Back instead of returning
	// to a menu.
	Standalone bool
}

// NewModel creates a model for the given scenario and resets it.
func NewModel(scn registry.Scenario, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Speed == "" {
		opts.Speed = config.SpeedNormal
	}
	if opts.Session == "" {
		opts.Session = "local"
	}
	cfg.Speed = opts.Speed.Multiplier()

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		scenario:   scn,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerHeight, 0)),
		store:      store,
		config:     cfg,
		speed:      opts.Speed,
		resetSpeed: cfg.Speed,
		fixedSeed:  fixed,
		session:    opts.Session,
		keys:       DefaultKeyMap(),
		help:       h,
		standalone: opts.Standalone,
	}
	scn.Reset(cfg)
	return m
}

// Init starts paused; the user starts the timer with space.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.MapKey(msg))

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.ticker.Accept(msg) {
			return m, nil
		}
		return m.step()
	}

	return m, nil
}

// handleAction applies one user action.
func (m Model) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	m.flash = ""

	switch a {
	case core.ActionQuit:
		m.ticker.Stop()
		m.recordRun()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.ticker.Stop()
		m.recordRun()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case core.ActionToggleRun:
		if m.ticker.Running() {
			m.ticker.Stop()
			return m, nil
		}
		if m.scenario.State().Stopped() {
			m.flash = "simulation stopped, press r to reset"
			return m, nil
		}
		return m, m.ticker.Start(m.interval())

	case core.ActionStep:
		if m.ticker.Running() {
			return m, nil
		}
		return m.step()

	case core.ActionReset:
		m.ticker.Stop()
		m.recordRun()
		m.reset()
		return m, nil

	case core.ActionCycleMode:
		run, pending := m.pendingRun()
		if !m.scenario.Control(a) {
			m.flash = "this scenario has a single mode"
			return m, nil
		}
		m.ticker.Stop()
		if pending {
			m.saveRun(run)
		}
		m.saved = false
		return m, nil

	case core.ActionForceDeadlock:
		if !m.scenario.Control(a) {
			m.flash = "deadlock cannot be forced right now"
			return m, nil
		}
		if m.scenario.State().Stopped() {
			m.ticker.Stop()
			m.recordRun()
		}
		return m, nil

	case core.ActionFaster, core.ActionSlower:
		if a == core.ActionFaster {
			m.speed = m.speed.Faster()
		} else {
			m.speed = m.speed.Slower()
		}
		m.config.Speed = m.speed.Multiplier()
		if m.ticker.Running() {
			return m, m.ticker.Start(m.interval())
		}
		return m, nil
	}

	return m, nil
}

// step resolves one tick and releases the timer once the scenario stops.
func (m Model) step() (tea.Model, tea.Cmd) {
	res := m.scenario.Step()
	if res.State.Stopped() {
		m.ticker.Stop()
		m.recordRun()
		return m, nil
	}
	return m, m.ticker.Next(m.interval())
}

// reset reinitializes the scenario, reseeding unless the seed was fixed.
func (m *Model) reset() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.scenario.Reset(m.config)
	m.resetSpeed = m.config.Speed
	m.saved = false
}

// interval is the scenario's interval adjusted for speed changes made
// since its last reset.
func (m Model) interval() time.Duration {
	return sim.Scale(m.scenario.Interval(), m.config.Speed/m.resetSpeed)
}

// recordRun saves a summary of the current run once. Best-effort: the
// simulation continues regardless of storage errors.
func (m *Model) recordRun() {
	if run, ok := m.pendingRun(); ok {
		m.saveRun(run)
	}
}

// pendingRun summarizes the current run if it still needs saving.
func (m Model) pendingRun() (storage.Run, bool) {
	st := m.scenario.State()
	if m.saved || m.store == nil || st.Tick == 0 {
		return storage.Run{}, false
	}
	return storage.Run{
		ScenarioID: m.scenario.ID(),
		Mode:       st.Mode,
		Seed:       m.config.Seed,
		Ticks:      st.Tick,
		Actions:    st.Actions,
		Outcome:    st.Outcome(),
		Session:    m.session,
	}, true
}

func (m *Model) saveRun(run storage.Run) {
	//nolint:errcheck // Best-effort save
	m.store.SaveRun(run)
	m.saved = true
}

// View renders the scenario followed by a status line and key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.scenario.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) statusLine() string {
	st := m.scenario.State()
	var state string
	switch {
	case st.Halted:
		state = alertStyle.Render("DEADLOCK")
	case st.Finished:
		state = runningStyle.Render("FINISHED")
	case m.ticker.Running():
		state = runningStyle.Render("RUNNING")
	default:
		state = statusStyle.Render("PAUSED")
	}

	line := fmt.Sprintf("%s  %s", state,
		statusStyle.Render(fmt.Sprintf("speed %s (%s)  seed %d", m.speed, m.interval(), m.config.Seed)))
	if m.flash != "" {
		line += "  " + alertStyle.Render(m.flash)
	}
	return line
}

// Running reports whether the tick timer is held.
func (m Model) Running() bool {
	return m.ticker.Running()
}

// Scenario returns the mounted scenario.
func (m Model) Scenario() registry.Scenario {
	return m.scenario
}

// Speed returns the current speed preset.
func (m Model) Speed() config.SpeedPreset {
	return m.speed
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Unmount releases the timer and records the run.
func (m *Model) Unmount() {
	m.ticker.Stop()
	m.recordRun()
}

// Run starts a Bubble Tea program for a single scenario.
func Run(scn registry.Scenario, store *storage.Store, cfg core.RuntimeConfig, speed config.SpeedPreset) error {
	model := NewModel(scn, store, cfg, ModelOptions{Speed: speed, Standalone: true})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
