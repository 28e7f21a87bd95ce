package wordcount

import (
	"fmt"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Render draws both inputs with their cursors, the counters and the log.
func (s *Scenario) Render(dst *core.Screen) {
	y := sim.DrawHeader(dst, s.Title(), s.state)

	for _, t := range s.threads {
		dst.DrawTextColor(2, y, t.Name, core.ColorTitle)
		dst.DrawTextColor(6, y, fmt.Sprintf("%-9s", t.Status), statusColor(t.Status))
		if s.mode == ModeLocal {
			dst.DrawTextColor(17, y, fmt.Sprintf("local=%d", t.Local), core.ColorCyan)
		}
		y++

		x := 2
		for i, r := range t.Text {
			c := core.ColorDefault
			switch {
			case i == t.Cursor:
				c = core.ColorBrightYellow
			case i < t.Cursor:
				c = core.ColorGray
			}
			if x >= dst.Width()-2 {
				x, y = 2, y+1
			}
			dst.SetColor(x, y, r, c)
			x++
		}
		y += 2
	}

	label := "shared total"
	if s.mode == ModeLocal {
		label = "joined total"
	}
	x := dst.DrawTextColor(2, y, fmt.Sprintf("%s: %d / %d", label, s.global, s.Expected()), core.ColorBrightWhite)
	if s.mode == ModeUnsafe {
		c := core.ColorFrame
		if s.collided {
			c = core.ColorHalted
		}
		dst.DrawTextColor(x+3, y, fmt.Sprintf("collisions %d  lost %d", s.collisions, s.lost), c)
	}
	y += 2

	if s.state.Finished {
		c := core.ColorBrightGreen
		if s.global != s.Expected() {
			c = core.ColorHalted
		}
		sim.DrawBanner(dst, y, fmt.Sprintf("joined: counted %d, expected %d", s.global, s.Expected()), c)
		y += 2
	}

	_, logArea := dst.Bounds().SplitH(y)
	sim.DrawJournal(dst, logArea, s.journal.Entries())
}

func statusColor(st Status) core.Color {
	switch st {
	case StatusScanning:
		return core.ColorWorking
	case StatusCritical:
		return core.ColorBlocked
	case StatusDone:
		return core.ColorReady
	default:
		return core.ColorIdle
	}
}
