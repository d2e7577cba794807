package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the terminal host.
type Color uint8

// Predefined colors for island tiles, entities and particles.
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
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
	ColorSand
)
