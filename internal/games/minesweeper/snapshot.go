package minesweeper

import (
	"strings"

	"github.com/vovakirdan/tui-minesweeper/internal/games/minesweeper/board"
)

// Snapshot state names beyond the board states.
const (
	StatePaused      = "paused"
	StatePausedSmall = "paused_small_window"
	StateDropdown    = "level_dropdown"
)

// Snapshot captures the game for determinism testing and replay.
type Snapshot struct {
	Tick           uint64
	Level          string
	Rows, Cols     int
	Mines          int
	State          string // Board state name, or one of the pause states
	Seconds        int
	RemainingFlags int
	Opened         int
	Cursor         board.Pos
	Grid           []string // One string per row, drawn with the configured symbols
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := g.board.State().String()
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.dropdownOpen:
		state = StateDropdown
	}

	grid := make([]string, g.level.Rows)
	for r := range grid {
		var sb strings.Builder
		for c := 0; c < g.level.Columns; c++ {
			ch, _ := g.glyph(r, c)
			sb.WriteRune(ch)
		}
		grid[r] = sb.String()
	}

	return Snapshot{
		Tick:           g.tick,
		Level:          g.level.ID,
		Rows:           g.level.Rows,
		Cols:           g.level.Columns,
		Mines:          g.level.Mines,
		State:          state,
		Seconds:        g.Seconds(),
		RemainingFlags: g.board.RemainingFlags(),
		Opened:         g.board.OpenCount(),
		Cursor:         board.Pos{Row: g.curRow, Col: g.curCol},
		Grid:           grid,
	}
}
