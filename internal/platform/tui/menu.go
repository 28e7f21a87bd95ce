package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/storage"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// MenuModel is the scenario picker. It mounts nothing itself; the session
// reads Selected and WantsHistory after each update.
type MenuModel struct {
	items       []registry.Info
	stats       map[string]storage.ScenarioStats
	cursor      int
	width       int
	height      int
	keys        KeyMap
	help        help.Model
	quitting    bool
	selected    *registry.Info
	openHistory bool
}

// NewMenuModel creates a menu over every registered scenario. Run counts
// are shown when a store is available.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]storage.ScenarioStats
	if store != nil {
		if all, err := store.AllStats(); err == nil {
			stats = all
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		items:  registry.List(),
		stats:  stats,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.History) {
			m.openHistory = true
			return m, nil
		}

		switch m.keys.MapKey(msg) {
		case core.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case core.ActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case core.ActionDown:
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case core.ActionConfirm:
			if len(m.items) > 0 {
				selected := m.items[m.cursor]
				m.selected = &selected
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S Y N C L A B"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(summaryStyle.Render("classic synchronization problems, one tick at a time"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-14s %-22s %s", item.ID, item.Title, m.statsLabel(item.ID))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(summaryStyle.Render(m.items[m.cursor].Summary), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.ShortHelpView(m.keys.MenuHelp())), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) statsLabel(id string) string {
	st, ok := m.stats[id]
	if !ok || st.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs, %d deadlocks", st.Runs, st.Deadlocks)
}

// Selected returns the chosen scenario, or nil if none selected.
func (m MenuModel) Selected() *registry.Info {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// centerText centers text within the given width, measuring the printable
// width so styled strings line up.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
