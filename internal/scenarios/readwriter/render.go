package readwriter

import (
	"fmt"

	"github.com/vovakirdan/synclab/internal/core"
	"github.com/vovakirdan/synclab/internal/sim"
)

// Render draws the resource, the readers, the writer and the log.
func (s *Scenario) Render(dst *core.Screen) {
	y := sim.DrawHeader(dst, s.Title(), s.state)

	box := core.NewRect(2, y, 30, 5)
	c := core.ColorIdle
	switch s.resource {
	case ResourceReading:
		c = core.ColorReady
	case ResourceWriting:
		c = core.ColorBlocked
	}
	dst.DrawBox(box, c)
	dst.DrawTextColor(box.X+2, box.Y+1, "shared resource", core.ColorTitle)
	dst.DrawTextColor(box.X+2, box.Y+2, s.resource.String(), c)
	dst.DrawTextColor(box.X+2, box.Y+3, fmt.Sprintf("readers inside: %d", s.ActiveReaders()), core.ColorFrame)

	ly := y
	for _, r := range s.readers {
		dst.DrawTextColor(36, ly, fmt.Sprintf("%-7s", r.Name), core.ColorDefault)
		dst.DrawTextColor(44, ly, fmt.Sprintf("%-8s", r.Status), readerColor(r.Status))
		dst.DrawTextColor(53, ly, fmt.Sprintf("x%d", r.Actions), core.ColorFrame)
		ly++
	}
	dst.DrawTextColor(36, ly, fmt.Sprintf("%-7s", s.writer.Name), core.ColorBrightMagenta)
	dst.DrawTextColor(44, ly, fmt.Sprintf("%-8s", s.writer.Status), writerColor(s.writer.Status))
	dst.DrawTextColor(53, ly, fmt.Sprintf("x%d", s.writer.Actions), core.ColorFrame)

	if s.policy == WriterPriority && s.writer.Status == WriterWaiting {
		dst.DrawTextColor(box.X, box.Bottom(), "new readers held back", core.ColorWaiting)
	}

	jy := max(box.Bottom(), ly) + 2
	_, logArea := dst.Bounds().SplitH(jy)
	sim.DrawJournal(dst, logArea, s.journal.Entries())
}

func readerColor(st ReaderStatus) core.Color {
	switch st {
	case ReaderWaiting:
		return core.ColorWaiting
	case ReaderReading:
		return core.ColorWorking
	default:
		return core.ColorIdle
	}
}

func writerColor(st WriterStatus) core.Color {
	switch st {
	case WriterWaiting:
		return core.ColorWaiting
	case WriterWriting:
		return core.ColorWorking
	default:
		return core.ColorIdle
	}
}
