package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Palette used by the game renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorDarkGreen
	ColorLime
	ColorYellow
	ColorBlue
	ColorBrown
	ColorGray
	ColorWhite
	ColorBrightRed
)
