package core

// Color is a foreground colour for a screen cell. Games pick from this
// palette; the platform decides how each entry looks in the terminal.
type Color uint8

// Palette entries. The number colours follow the classic desktop scheme.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightWhite
	ColorGray
	ColorCursor // Reverse video highlight

	colorCount
)

// Colors returns every palette entry in order.
func Colors() []Color {
	out := make([]Color, 0, colorCount)
	for c := ColorDefault; c < colorCount; c++ {
		out = append(out, c)
	}
	return out
}

// numberColors holds the colour of each neighbour count; index 0 is unused.
var numberColors = [...]Color{
	1: ColorBrightBlue,
	2: ColorGreen,
	3: ColorBrightRed,
	4: ColorBlue,
	5: ColorRed,
	6: ColorCyan,
	7: ColorBrightWhite,
	8: ColorGray,
}

// NumberColor returns the colour for a neighbour count of 1 to 8.
// Other values get ColorDefault.
func NumberColor(n int) Color {
	if n < 1 || n >= len(numberColors) {
		return ColorDefault
	}
	return numberColors[n]
}
