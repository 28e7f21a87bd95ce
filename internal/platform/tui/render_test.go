package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/synclab/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColor(0, 0, "sem", core.ColorReady)
	s.DrawTextColor(4, 0, "mutex", core.ColorBlocked)
	s.DrawTextColor(0, 1, "plain", core.ColorDefault)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Errorf("line %d: expected width 12, got %d", i, w)
		}
	}
	for _, want := range []string{"sem", "mutex", "plain"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	st := styleFor(core.Color(200))
	if st.Render("x") != colorStyles[core.ColorDefault].Render("x") {
		t.Error("expected unknown colors to fall back to the default style")
	}
}

func TestEveryPaletteColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}
