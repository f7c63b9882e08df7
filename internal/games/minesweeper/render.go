package minesweeper

import (
	"fmt"

	"github.com/vovakirdan/tui-minesweeper/internal/config"
	"github.com/vovakirdan/tui-minesweeper/internal/core"
	"github.com/vovakirdan/tui-minesweeper/internal/games/minesweeper/board"
)

const (
	cellWidth   = 2  // Each cell is a space followed by its symbol
	hudHeight   = 2  // Title row and counter row
	statusLines = 1  // Message row under the board
	minHUDWidth = 26 // Counter, face and timer side by side
	faceWidth   = 4  // "[:)]"
)

// layout holds screen positions derived from the level and screen size.
type layout struct {
	hud  core.Rect // Counter row
	grid core.Rect // Board frame including the border
	face core.Rect
}

func (g *Game) layout() layout {
	w := g.level.Columns*cellWidth + 3
	h := g.level.Rows + 2
	screen := core.NewRect(0, 0, g.screenW, g.screenH)
	hud := screen.CenteredIn(max(w, minHUDWidth), 1, 1)
	return layout{
		hud:  hud,
		grid: hud.CenteredIn(w, h, hudHeight),
		face: hud.CenteredIn(faceWidth, 1, 1),
	}
}

// minSize returns the smallest screen that fits the level.
func (g *Game) minSize() (int, int) {
	w := max(g.level.Columns*cellWidth+3, minHUDWidth)
	h := hudHeight + g.level.Rows + 2 + statusLines
	return w, h
}

// CellAt maps screen coordinates to a board position.
// Both the symbol and the space before it belong to a cell.
func (g *Game) CellAt(x, y int) (row, col int, ok bool) {
	if g.tooSmall {
		return 0, 0, false
	}
	inner := g.layout().grid.Inset(1)
	inner.W = g.level.Columns * cellWidth // The trailing border pad is not a cell
	if !inner.Contains(x, y) {
		return 0, 0, false
	}
	return y - inner.Y, (x - inner.X) / cellWidth, true
}

// cellScreenPos returns where the symbol of (row, col) is drawn.
func (g *Game) cellScreenPos(row, col int) (int, int) {
	grid := g.layout().grid
	return grid.X + 2 + col*cellWidth, grid.Y + 1 + row
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	g.renderHUD(dst, l)
	g.renderBoard(dst, l)
	g.renderStatus(dst, l)

	switch {
	case g.paused:
		cx, cy := l.grid.Center()
		drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
	case g.dropdownOpen:
		g.renderDropdown(dst)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.minSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d for %s", w, h, g.level.Name))
}

// renderHUD draws the title, the flag counter, the face and the timer.
func (g *Game) renderHUD(dst *core.Screen, l layout) {
	title := "Minesweeper - " + g.level.Name
	cx, _ := l.grid.Center()
	dst.DrawTextAround(cx, 0, title, core.ColorBrightWhite)

	counter := core.Clamp(g.board.RemainingFlags(), -99, 999)
	dst.DrawTextColor(l.hud.X, l.hud.Y, fmt.Sprintf("%03d", counter), core.ColorBrightRed)

	dst.DrawTextColor(l.face.X, l.face.Y, "["+g.face()+"]", core.ColorBrightYellow)

	seconds := min(g.Seconds(), g.maxSeconds)
	timer := fmt.Sprintf("%03d", seconds)
	dst.DrawTextColor(l.hud.Right()-len(timer), l.hud.Y, timer, core.ColorBrightRed)
}

func (g *Game) face() string {
	switch g.board.State() {
	case board.StateLost:
		return "X("
	case board.StateWon:
		return "B)"
	default:
		return ":)"
	}
}

// renderBoard draws the frame and every cell.
func (g *Game) renderBoard(dst *core.Screen, l layout) {
	dst.DrawBox(l.grid)

	closed := config.Rune(g.symbols.Closed, '#')
	for r := 0; r < g.level.Rows; r++ {
		for c := 0; c < g.level.Columns; c++ {
			x, y := g.cellScreenPos(r, c)

			// A paused board is hidden
			if g.paused {
				dst.SetColor(x, y, closed, core.ColorDefault)
				continue
			}

			ch, color := g.glyph(r, c)
			if r == g.curRow && c == g.curCol && !g.dropdownOpen {
				color = core.ColorCursor
			}
			dst.SetColor(x, y, ch, color)
		}
	}
}

// glyph picks the symbol and colour of a cell from the board state.
func (g *Game) glyph(row, col int) (rune, core.Color) {
	s := g.symbols
	cell, _ := g.board.Cell(row, col)
	lost := g.board.IsLost()

	switch {
	case cell.Open && cell.Mine:
		if p, ok := g.board.Exploded(); ok && p.Row == row && p.Col == col {
			return config.Rune(s.Exploded, 'X'), core.ColorBrightRed
		}
		return config.Rune(s.Mine, '*'), core.ColorRed
	case cell.Open && cell.Adjacent > 0:
		return rune('0' + cell.Adjacent), core.NumberColor(cell.Adjacent)
	case cell.Open:
		return config.Rune(s.Empty, '.'), core.ColorGray
	case cell.Flagged && lost && !cell.Mine:
		return config.Rune(s.WrongFlag, 'x'), core.ColorRed
	case cell.Flagged:
		return config.Rune(s.Flag, 'F'), core.ColorBrightYellow
	case lost && cell.Mine:
		return config.Rune(s.Mine, '*'), core.ColorRed
	default:
		return config.Rune(s.Closed, '#'), core.ColorDefault
	}
}

// renderStatus draws the message row under the board.
func (g *Game) renderStatus(dst *core.Screen, l layout) {
	var msg string
	color := core.ColorGray

	switch g.board.State() {
	case board.StateUnstarted:
		msg = "Reveal any cell to start"
	case board.StateInProgress:
		msg = "Tab: levels  P: pause"
	case board.StateLost:
		msg = "BOOM! Press R to try again"
		color = core.ColorBrightRed
	case board.StateWon:
		msg = fmt.Sprintf("Cleared in %ds! Press R to play again", g.Seconds())
		color = core.ColorBrightGreen
	}

	cx, _ := l.grid.Center()
	dst.DrawTextAround(cx, l.grid.Bottom(), msg, color)
}

// dropdownRect returns the frame of the level dropdown.
func (g *Game) dropdownRect() core.Rect {
	w := 0
	for _, lv := range g.levels {
		w = max(w, len([]rune(lv.Title())))
	}
	w += 6 // Border, padding and marker
	h := len(g.levels) + 2

	return g.layout().grid.CenteredIn(w, h, 1)
}

// dropdownItemAt returns the dropdown entry under (x, y).
func (g *Game) dropdownItemAt(x, y int) (int, bool) {
	r := g.dropdownRect()
	inner := r.Inset(1)
	if !inner.Contains(x, y) {
		return 0, false
	}
	return y - inner.Y, true
}

// renderDropdown draws the level list over the board.
func (g *Game) renderDropdown(dst *core.Screen) {
	r := g.dropdownRect()
	dst.DrawPanel(r)

	for i, lv := range g.levels {
		line := "  " + lv.Title()
		color := core.ColorDefault
		if i == g.dropdownIdx {
			line = "> " + lv.Title()
			color = core.ColorCursor
		}
		for len([]rune(line)) < r.W-2 {
			line += " "
		}
		dst.DrawTextColor(r.X+1, r.Y+1+i, line, color)
	}
}

// drawOverlay draws a centered text overlay.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawPanel(box)
	for i, line := range lines {
		dst.DrawTextAround(centerX, box.Y+1+i, line, core.ColorDefault)
	}
}
