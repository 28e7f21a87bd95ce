package counter

import (
	"fmt"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
)

var program = []PC{PCRead, PCInc, PCWrite}

// Render draws both threads around the shared RAM cell.
func (s *Scenario) Render(dst *core.Screen) {
	y := sim.DrawHeader(dst, s.Title(), s.state)

	s.drawThread(dst, core.NewRect(2, y, 22, 9), s.threads[0])
	s.drawThread(dst, core.NewRect(46, y, 22, 9), s.threads[1])

	ram := core.NewRect(27, y+2, 16, 5)
	ramColor := core.ColorBrightWhite
	if s.mode == ModeSafe {
		ramColor = core.ColorGreen
	}
	dst.DrawBox(ram, ramColor)
	dst.DrawTextColor(ram.X+2, ram.Y+1, "RAM", core.ColorFrame)
	dst.DrawTextColor(ram.X+2, ram.Y+2, fmt.Sprintf("count = %d", s.ram), ramColor)
	if s.mode == ModeSafe {
		dst.DrawTextColor(ram.X+2, ram.Y+3, "locked", core.ColorGreen)
	}

	row := y + 10
	if s.state.Finished {
		c := core.ColorBrightGreen
		msg := fmt.Sprintf("RAM %d = expected %d", s.ram, s.Expected())
		if s.Lost() > 0 {
			c = core.ColorHalted
			msg = fmt.Sprintf("RAM %d, expected %d: %d updates lost", s.ram, s.Expected(), s.Lost())
		}
		sim.DrawBanner(dst, row, msg, c)
		row += 2
	}

	_, logArea := dst.Bounds().SplitH(row)
	sim.DrawJournal(dst, logArea, s.journal.Entries())
}

func (s *Scenario) drawThread(dst *core.Screen, r core.Rect, t Thread) {
	dst.DrawBox(r, core.ColorFrame)
	dst.DrawTextColor(r.X+2, r.Y, fmt.Sprintf(" %s %d/%d ", t.Name, t.Counted, s.cfg.Target), core.ColorTitle)

	for i, pc := range program {
		c := core.ColorIdle
		marker := "  "
		if t.PC == pc {
			c, marker = core.ColorWorking, "▶ "
		}
		dst.DrawTextColor(r.X+2, r.Y+2+i, marker+pc.String(), c)
	}

	reg := "-"
	if t.Loaded {
		reg = fmt.Sprint(t.Reg)
	}
	dst.DrawTextColor(r.X+2, r.Y+6, "reg: "+reg, core.ColorBrightGreen)
}
