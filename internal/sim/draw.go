package sim

import (
	"fmt"

	"github.com/vovakirdan/synclab/internal/core"
)

// SeverityColor maps a journal severity to its screen color.
func SeverityColor(sev Severity) core.Color {
	switch sev {
	case SeveritySuccess:
		return core.ColorBrightGreen
	case SeverityWarning:
		return core.ColorYellow
	case SeverityError:
		return core.ColorBrightRed
	default:
		return core.ColorCyan
	}
}

// DrawHeader draws the title line and the tick/mode/state status line.
// It returns the first free row below the header.
func DrawHeader(dst *core.Screen, title string, st core.SimState) int {
	dst.DrawTextColor(1, 0, title, core.ColorTitle)

	x := dst.DrawTextColor(1, 1, fmt.Sprintf("tick %d  actions %d", st.Tick, st.Actions), core.ColorDefault)
	if st.Mode != "" {
		x = dst.DrawTextColor(x+2, 1, "mode: ", core.ColorFrame)
		x = dst.DrawTextColor(x, 1, st.Mode, core.ColorBrightYellow)
	}
	switch {
	case st.Halted:
		dst.DrawTextColor(x+2, 1, "DEADLOCK", core.ColorHalted)
	case st.Finished:
		dst.DrawTextColor(x+2, 1, "FINISHED", core.ColorBrightGreen)
	}
	dst.DrawHLine(0, 2, dst.Width(), '─', core.ColorFrame)
	return 3
}

// DrawGate draws a semaphore badge like "[empty 7]" and returns the column
// after it.
func DrawGate(dst *core.Screen, x, y int, name string, value int) int {
	return dst.DrawTextColor(x, y, fmt.Sprintf("[%s %d]", name, value), core.GateColor(value > 0))
}

// DrawMutex draws a mutex badge with its owner and returns the column after it.
func DrawMutex(dst *core.Screen, x, y int, name string, m Mutex) int {
	if !m.Locked {
		return dst.DrawTextColor(x, y, fmt.Sprintf("[%s free]", name), core.ColorReady)
	}
	return dst.DrawTextColor(x, y, fmt.Sprintf("[%s held by %s]", name, m.Owner), core.ColorBlocked)
}

// DrawJournal draws the newest entries inside a framed panel.
func DrawJournal(dst *core.Screen, r core.Rect, entries []Entry) {
	if r.W < 4 || r.H < 3 {
		return
	}
	dst.DrawBox(r, core.ColorFrame)
	dst.DrawTextColor(r.X+2, r.Y, " log ", core.ColorTitle)

	inner := r.Inset(1)
	for i, e := range entries {
		if i >= inner.H {
			break
		}
		line := fmt.Sprintf("#%-3d %-10s %s", e.Seq, e.Actor, e.Action)
		if e.Detail != "" {
			line += " · " + e.Detail
		}
		dst.DrawTextColor(inner.X, inner.Y+i, clip(line, inner.W), SeverityColor(e.Severity))
	}
}

// DrawBanner draws a centered highlighted message.
func DrawBanner(dst *core.Screen, y int, text string, c core.Color) {
	dst.DrawTextCentered(y, "» "+text+" «", c)
}

var sparks = []rune(" ▁▂▃▄▅▆▇█")

// Sparkline renders values in [0, top] as block characters.
func Sparkline(values []int, top int) string {
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if top > 0 {
			idx = core.Clamp(v*(len(sparks)-1)/top, 0, len(sparks)-1)
		}
		out[i] = sparks[idx]
	}
	return string(out)
}

func clip(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:max(w, 0)])
	}
	return string(r[:w-1]) + "…"
}
