package prodcons

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
)

const slotWidth = 6

// Render draws the buffer, semaphores with their wait queues, the actors,
// the occupancy chart and the log.
func (s *Scenario) Render(dst *core.Screen) {
	y := sim.DrawHeader(dst, s.Title(), s.state)

	// Buffer slots
	x := 2
	for i, it := range s.buffer {
		cell := core.NewRect(x, y, slotWidth, 3)
		if it == nil {
			dst.DrawBox(cell, core.ColorFrame)
		} else {
			dst.DrawBox(cell, core.ColorGreen)
			dst.DrawTextColor(x+1, y+1, fmt.Sprintf("%4d", it.ID), core.ColorBrightGreen)
		}
		dst.DrawTextColor(x+2, y+3, fmt.Sprint(i), core.ColorFrame)
		x += slotWidth + 1
	}
	y += 5

	// Gates and their queues
	gates := []struct {
		gate  Gate
		label string
		value int
	}{
		{GateEmpty, "empty", s.empty.Value},
		{GateFull, "full", s.full.Value},
	}
	for _, g := range gates {
		end := sim.DrawGate(dst, 2, y, g.label, g.value)
		drawQueue(dst, max(end+1, 14), y, s.queues[g.gate])
		y++
	}
	end := sim.DrawMutex(dst, 2, y, "mutex", s.mutex)
	drawQueue(dst, max(end+1, 14), y, s.queues[GateMutex])
	y += 2

	// Actors
	x = 2
	for _, a := range s.actors {
		label := a.Status.String()
		c := core.ColorIdle
		switch a.Status {
		case StatusBlocked:
			label += ":" + a.On.String()
			c = core.ColorBlocked
		case StatusWorking:
			c = core.ColorWorking
		}
		dst.DrawTextColor(x, y, a.Name, core.ColorDefault)
		dst.DrawTextColor(x, y+1, label, c)
		dst.DrawTextColor(x, y+2, fmt.Sprintf("x%d", a.Actions), core.ColorFrame)
		x += 14
	}
	y += 4

	if len(s.history) > 0 {
		dst.DrawTextColor(2, y, "occupancy ", core.ColorFrame)
		dst.DrawTextColor(12, y, sim.Sparkline(s.history, len(s.buffer)), core.ColorCyan)
		y += 2
	}

	if s.state.Halted {
		sim.DrawBanner(dst, y, "DEADLOCK: mutex held while waiting on a closed gate", core.ColorHalted)
		y += 2
	}

	_, logArea := dst.Bounds().SplitH(y)
	sim.DrawJournal(dst, logArea, s.journal.Entries())
}

func drawQueue(dst *core.Screen, x, y int, q []string) {
	if len(q) == 0 {
		return
	}
	dst.DrawTextColor(x, y, "queue: "+strings.Join(q, " "), core.ColorWaiting)
}
