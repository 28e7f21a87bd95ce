package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/synclab/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionToggleRun},
		{"n", runeKey('n'), core.ActionStep},
		{"r", runeKey('r'), core.ActionReset},
		{"m", runeKey('m'), core.ActionCycleMode},
		{"d", runeKey('d'), core.ActionForceDeadlock},
		{"+", runeKey('+'), core.ActionFaster},
		{"-", runeKey('-'), core.ActionSlower},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"j", runeKey('j'), core.ActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"x", runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%s) = %v, expected %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestHelpListsScenarioKeys(t *testing.T) {
	keys := DefaultKeyMap()

	if got := len(keys.ShortHelp()); got != 9 {
		t.Errorf("expected 9 short help bindings, got %d", got)
	}
	total := 0
	for _, group := range keys.FullHelp() {
		total += len(group)
	}
	if total != 9 {
		t.Errorf("expected 9 full help bindings, got %d", total)
	}
}
