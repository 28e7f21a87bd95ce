package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/synclab/internal/registry"
	"github.com/vovakirdan/synclab/internal/storage"
)

const maxHistoryRows = 100

// HistoryKeyMap defines the key bindings of the history view.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next scenario")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev scenario")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// HistoryModel shows stored run summaries in a table, filtered by scenario.
// The first filter shows every scenario.
type HistoryModel struct {
	filters   []registry.Info
	cursor    int
	store     *storage.Store
	runs      []storage.Run
	stats     storage.ScenarioStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history view.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	filters := append([]registry.Info{{ID: "", Title: "All scenarios"}}, registry.List()...)

	m := HistoryModel{
		filters: filters,
		store:   store,
		keys:    DefaultHistoryKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.load()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Scenario", Width: 13},
		{Title: "Mode", Width: 16},
		{Title: "Ticks", Width: 6},
		{Title: "Acts", Width: 6},
		{Title: "Outcome", Width: 9},
		{Title: "Session", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the runs and stats for the current filter.
func (m *HistoryModel) load() {
	m.runs, m.stats, m.loadErr = nil, storage.ScenarioStats{}, nil
	if m.store != nil {
		id := m.filters[m.cursor].ID
		m.runs, m.loadErr = m.store.RecentRuns(id, maxHistoryRows)
		if m.loadErr == nil && id != "" {
			m.stats, m.loadErr = m.store.ScenarioStats(id)
		}
	}
	m.updateRows()
}

func (m *HistoryModel) updateRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.ScenarioID,
			r.Mode,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Actions),
			r.Outcome,
			r.Session,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor - 1 + len(m.filters)) % len(m.filters)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	filter := m.filters[m.cursor]
	b.WriteString(centerText(titleStyle.Render("RUN HISTORY - "+filter.Title), m.width))
	b.WriteString("\n\n")

	if filter.ID != "" && m.stats.Runs > 0 {
		line := fmt.Sprintf("%d runs  %d deadlocks (%.0f%%)  %d finished  avg %.0f ticks  max %d",
			m.stats.Runs, m.stats.Deadlocks, m.stats.DeadlockRate()*100,
			m.stats.Finished, m.stats.AvgTicks, m.stats.MaxTicks)
		b.WriteString(centerText(summaryStyle.Render(line), m.width))
		b.WriteString("\n\n")
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(boxStyle.Render(m.tableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) tableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.store == nil:
		return empty.Render("Run history is unavailable.\nThe database could not be opened.")
	case m.loadErr != nil:
		return empty.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return empty.Render("No runs recorded yet.\nStart a scenario to fill the history.")
	}
	return m.table.View()
}

// Rows returns the number of runs shown.
func (m HistoryModel) Rows() int {
	return len(m.runs)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
