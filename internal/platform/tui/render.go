package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-minesweeper/internal/core"
)

// ansiCodes maps palette entries to terminal colours. Codes 0-15 follow
// the user's terminal theme.
var ansiCodes = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorBlue:         "4",
	core.ColorCyan:         "6",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightBlue:   "12",
	core.ColorBrightWhite:  "15",
	core.ColorGray:         "245",
}

// colorStyles holds one style per palette entry.
var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(core.Colors()))
	for _, c := range core.Colors() {
		switch c {
		case core.ColorDefault:
			styles[c] = lipgloss.NewStyle()
		case core.ColorCursor:
			styles[c] = lipgloss.NewStyle().Reverse(true)
		default:
			styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiCodes[c]))
		}
	}
	return styles
}

// run is a stretch of one row drawn in a single colour.
type run struct {
	color core.Color
	text  string
}

// rowRuns splits row y of s into maximal single-colour runs.
func rowRuns(s *core.Screen, y int) []run {
	var runs []run
	var text strings.Builder

	for x := 0; x < s.Width(); x++ {
		cell := s.GetCell(x, y)
		if len(runs) > 0 && runs[len(runs)-1].color != cell.Color {
			runs[len(runs)-1].text = text.String()
			text.Reset()
		}
		if len(runs) == 0 || runs[len(runs)-1].color != cell.Color {
			runs = append(runs, run{color: cell.Color})
		}
		text.WriteRune(cell.Rune)
	}
	if len(runs) > 0 {
		runs[len(runs)-1].text = text.String()
	}
	return runs
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each colour run is styled once, so a mostly closed board costs few
// escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, r := range rowRuns(s, y) {
			style, ok := colorStyles[r.color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(r.text))
		}
	}
	return sb.String()
}
