package fruit

import (
	"fmt"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Render draws the plate, the gates, the family and the log.
func (s *Scenario) Render(dst *core.Screen) {
	y := sim.DrawHeader(dst, s.Title(), s.state)

	plateColor := core.ColorIdle
	glyph := "( empty )"
	switch s.plate {
	case PlateApple:
		plateColor, glyph = core.ColorBrightRed, "( apple )"
	case PlateOrange:
		plateColor, glyph = core.ColorOrange, "( orange )"
	}
	dst.DrawTextColor(2, y+1, "plate ", core.ColorFrame)
	dst.DrawTextColor(8, y+1, glyph, plateColor)

	x := 2
	x = sim.DrawGate(dst, x, y+3, "plate", s.plateGate.Value) + 1
	x = sim.DrawGate(dst, x, y+3, "apple", s.appleGate.Value) + 1
	sim.DrawGate(dst, x, y+3, "orange", s.orangeGate.Value)

	row := y + 5
	for _, a := range s.actors {
		label, c := s.label(a)
		dst.DrawTextColor(2, row, fmt.Sprintf("%-9s", a.Name), core.ColorDefault)
		dst.DrawTextColor(12, row, fmt.Sprintf("%-8s", label), c)
		dst.DrawTextColor(22, row, fmt.Sprintf("x%d", a.Actions), core.ColorFrame)
		row++
	}

	_, log := dst.Bounds().SplitH(row + 1)
	sim.DrawJournal(dst, log, s.journal.Entries())
}

// label derives the display status: a working member shows "working",
// an idle one shows whether its gate would let it act.
func (s *Scenario) label(a Actor) (string, core.Color) {
	switch {
	case a.Status == StatusWorking:
		return "working", core.ColorWorking
	case s.Ready(a.Role):
		return "ready", core.ColorReady
	default:
		return "waiting", core.ColorWaiting
	}
}
