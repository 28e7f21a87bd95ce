package philosophers

import (
	"fmt"
	"math"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Render draws the table as an ellipse of philosophers with forks between
// them, a status list and the log.
func (s *Scenario) Render(dst *core.Screen) {
	top := sim.DrawHeader(dst, s.Title(), s.state)

	table := core.NewRect(0, top, min(dst.Width(), 44), 13)
	cx, cy := table.Center()
	rx, ry := float64(table.W/2-6), float64(table.H/2-1)
	n := len(s.phils)

	point := func(slot float64) (int, int) {
		angle := -math.Pi/2 + 2*math.Pi*slot/float64(n)
		return cx + int(math.Round(rx*math.Cos(angle))), cy + int(math.Round(ry*math.Sin(angle)))
	}

	for i, p := range s.phils {
		x, y := point(float64(i))
		dst.DrawTextColor(x-1, y, p.Name, statusColor(p.Status))
	}
	for f, owner := range s.forks {
		// Fork f lies between philosopher f and f+1.
		x, y := point(float64(f) + 0.5)
		c := core.ColorReady
		if owner != noOwner {
			c = core.ColorBlocked
		}
		dst.DrawTextColor(x, y, fmt.Sprintf("ψ%d", f), c)
	}

	// Status list beside the table
	lx := table.Right() + 2
	ly := top + 1
	dst.DrawTextColor(lx, ly, fmt.Sprintf("strategy: %s", s.strategy), core.ColorBrightYellow)
	ly += 2
	for i, p := range s.phils {
		first, second := s.forkOrder(i)
		dst.DrawTextColor(lx, ly, fmt.Sprintf("%-3s", p.Name), core.ColorDefault)
		dst.DrawTextColor(lx+4, ly, fmt.Sprintf("%-12s", p.Status), statusColor(p.Status))
		dst.DrawTextColor(lx+17, ly, fmt.Sprintf("ψ%d→ψ%d meals %d", first, second, p.Actions), core.ColorFrame)
		ly++
	}

	y := table.Bottom() + 1
	if s.state.Halted {
		sim.DrawBanner(dst, y, "DEADLOCK: every philosopher holds one fork", core.ColorHalted)
		y += 2
	}
	_, logArea := dst.Bounds().SplitH(y)
	sim.DrawJournal(dst, logArea, s.journal.Entries())
}

func statusColor(st Status) core.Color {
	switch st {
	case StatusHungry:
		return core.ColorWaiting
	case StatusHoldingOne:
		return core.ColorOrange
	case StatusEating:
		return core.ColorWorking
	default:
		return core.ColorIdle
	}
}
