package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/synclab/internal/config"
	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/storage"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenScenario
	screenHistory
)

// SessionOptions configure a session.
type SessionOptions struct {
	Username   string // "local" for terminal sessions
	ConfigPath string // Custom scenario config, passed to factories
	Speed      config.SpeedPreset
}

// SessionModel manages the full flow: menu -> scenario -> menu.
// Exactly one scenario is mounted at a time; switching away unmounts it,
// which releases its timer.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	opts     SessionOptions
	current  screenKind
	menu     MenuModel
	scenario *Model
	history  *HistoryModel
	err      error
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if opts.Username == "" {
		opts.Username = "local"
	}
	return SessionModel{
		store:  store,
		config: cfg,
		opts:   opts,
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenScenario:
		return m.updateScenario(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		h := NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.history = &h
		m.current = screenHistory
		return m, h.Init()

	case m.menu.Selected() != nil:
		scn, err := registry.Create(m.menu.Selected().ID, registry.Options{ConfigPath: m.opts.ConfigPath})
		if err != nil {
			m.err = err
			m.menu = NewMenuModel(m.store, m.config)
			return m, nil
		}
		m.err = nil
		model := NewModel(scn, m.store, m.config, ModelOptions{
			Speed:   m.opts.Speed,
			Session: m.opts.Username,
		})
		m.scenario = &model
		m.current = screenScenario
		return m, model.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScenario(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scenario.Update(msg)
	if model, ok := newModel.(Model); ok {
		m.scenario = &model
	}

	if m.scenario.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scenario.BackToMenu() {
		m.opts.Speed = m.scenario.Speed()
		m.scenario.Unmount()
		m.scenario = nil
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if model, ok := newModel.(HistoryModel); ok {
		m.history = &model
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.history = nil
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenScenario:
		return m.scenario.View()
	case screenHistory:
		return m.history.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText(alertStyle.Render(m.err.Error()), m.config.ScreenW)
	}
	return view
}

// RunSession runs a local menu session until the user quits.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(NewSessionModel(store, cfg, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
