package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by scenario renderers.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Semantic colors shared by every scenario so that the same meaning
// always reads the same on screen.
const (
	ColorIdle    = ColorGray
	ColorReady   = ColorGreen
	ColorWaiting = ColorYellow
	ColorWorking = ColorBrightCyan
	ColorBlocked = ColorRed
	ColorHalted  = ColorBrightRed
	ColorFrame   = ColorGray
	ColorTitle   = ColorBrightWhite
)

// GateColor returns the color of a gate badge: open gates are green,
// closed ones gray.
func GateColor(open bool) Color {
	if open {
		return ColorReady
	}
	return ColorIdle
}
