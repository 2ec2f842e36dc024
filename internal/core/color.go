package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette for game elements. The neon entries follow the arcade look of the
// game: yellow ball, green pipes, pink highlights, blue titles.
const (
	ColorDefault Color = iota
	ColorRed
	ColorWhite
	ColorGray
	ColorNeonYellow
	ColorNeonGreen
	ColorNeonPink
	ColorNeonBlue
)
