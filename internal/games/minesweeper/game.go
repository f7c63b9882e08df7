// Package minesweeper adapts the board engine to the platform game loop:
// cursor and pointer input, the level dropdown, the timer and rendering.
package minesweeper

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-minesweeper/internal/config"
	"github.com/vovakirdan/tui-minesweeper/internal/core"
	"github.com/vovakirdan/tui-minesweeper/internal/games/minesweeper/board"
)

// Game implements registry.Game for one Minesweeper level at a time.
type Game struct {
	level      config.Level
	levels     []config.Level // Dropdown choices
	symbols    config.Symbols
	maxSeconds int

	rng   *rand.Rand
	board *board.Board
	tick  uint64

	tickRate     int
	elapsedTicks int // Counted only while the board is in progress

	curRow int
	curCol int

	// Screen dimensions
	screenW int
	screenH int

	paused       bool
	tooSmall     bool
	dropdownOpen bool
	dropdownIdx  int
}

// New creates a game for the given level using the current configuration.
// The level must be valid; see config.Level.Validate.
func New(level config.Level) *Game {
	lvls, syms, maxSec := currentSettings()
	return &Game{
		level:      level,
		levels:     lvls,
		symbols:    syms,
		maxSeconds: maxSec,
	}
}

// ID returns the id of the level being played.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the display name of the level being played.
func (g *Game) Title() string {
	return g.level.Title()
}

// Level returns the level being played.
func (g *Game) Level() config.Level {
	return g.level
}

// Reset starts a new board seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(cfg.Seed))
	} else {
		g.rng.Seed(cfg.Seed)
	}

	cfg = cfg.WithDefaults()
	g.tickRate = cfg.TickRate
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.dropdownOpen = false

	g.newBoard()
	g.checkScreenSize()
}

// newBoard prepares an unstarted board for the current level, reusing the
// existing one when the dimensions match.
func (g *Game) newBoard() {
	l := g.level
	if g.board != nil {
		g.board.Reset() // Restores a mine count capped by the last placement
	}
	if g.board == nil || g.board.Rows() != l.Rows || g.board.Cols() != l.Columns || g.board.Mines() != l.Mines {
		b, err := board.New(l.Rows, l.Columns, l.Mines, g.rng)
		if err != nil {
			panic(fmt.Sprintf("minesweeper: level %q: %v", l.ID, err))
		}
		g.board = b
	}

	g.elapsedTicks = 0
	g.curRow = l.Rows / 2
	g.curCol = l.Columns / 2
}

// restart begins a new game on the same level. The random stream continues
// so the next layout differs from the last one.
func (g *Game) restart() {
	g.paused = false
	g.dropdownOpen = false
	g.newBoard()
}

// switchLevel starts a new game on another level.
func (g *Game) switchLevel(l config.Level) {
	g.level = l
	g.restart()
	g.checkScreenSize()
}

// Resize relayouts the game for a new terminal size without losing progress.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the level.
func (g *Game) checkScreenSize() {
	minW, minH := g.minSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.dropdownOpen && !g.finished() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// The level dropdown takes all input while open and freezes the timer
	if g.dropdownOpen || in.Has(core.ActionMenu) {
		g.stepDropdown(in)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if in.Has(core.ActionFlag) {
		g.board.ToggleFlag(g.curRow, g.curCol)
	}
	if in.Has(core.ActionReveal) {
		g.board.Reveal(g.curRow, g.curCol)
	}
	if in.Has(core.ActionChord) {
		g.board.Chord(g.curRow, g.curCol)
	}

	for _, c := range in.Clicks {
		if g.handleClick(c) {
			break
		}
	}

	if g.board.State() == board.StateInProgress {
		g.elapsedTicks++
	}

	return core.StepResult{State: g.State()}
}

// moveCursor applies directional actions, keeping the cursor on the grid.
func (g *Game) moveCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.curRow--
	case in.Has(core.ActionDown):
		g.curRow++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.curCol--
	case in.Has(core.ActionRight):
		g.curCol++
	}
	g.curRow = core.Clamp(g.curRow, 0, g.level.Rows-1)
	g.curCol = core.Clamp(g.curCol, 0, g.level.Columns-1)
}

// handleClick applies one pointer press and reports whether it restarted
// the game, in which case later clicks of the frame are dropped.
func (g *Game) handleClick(c core.Click) bool {
	if g.layout().face.Contains(c.X, c.Y) {
		g.restart()
		return true
	}

	row, col, ok := g.CellAt(c.X, c.Y)
	if !ok {
		return false
	}
	g.curRow, g.curCol = row, col

	switch c.Button {
	case core.ButtonLeft:
		// A click on an open number chords, as on most desktop versions
		if g.board.IsOpen(row, col) {
			g.board.Chord(row, col)
		} else {
			g.board.Reveal(row, col)
		}
	case core.ButtonRight:
		g.board.ToggleFlag(row, col)
	case core.ButtonMiddle:
		g.board.Chord(row, col)
	}
	return false
}

// stepDropdown opens, navigates and confirms the level dropdown.
func (g *Game) stepDropdown(in core.InputFrame) {
	if !g.dropdownOpen {
		g.dropdownOpen = true
		g.dropdownIdx = g.levelIndex()
		return
	}

	n := len(g.levels)
	switch {
	case in.Has(core.ActionMenu), in.Has(core.ActionBack):
		g.dropdownOpen = false
	case in.Has(core.ActionUp):
		g.dropdownIdx = (g.dropdownIdx - 1 + n) % n
	case in.Has(core.ActionDown):
		g.dropdownIdx = (g.dropdownIdx + 1) % n
	case in.Has(core.ActionConfirm):
		g.selectLevel(g.dropdownIdx)
	}

	for _, c := range in.Clicks {
		if !g.dropdownOpen {
			break
		}
		if idx, ok := g.dropdownItemAt(c.X, c.Y); ok {
			g.selectLevel(idx)
		} else {
			g.dropdownOpen = false
		}
	}
}

// selectLevel closes the dropdown and switches to levels[idx] if it differs
// from the current level.
func (g *Game) selectLevel(idx int) {
	g.dropdownOpen = false
	if idx < 0 || idx >= len(g.levels) {
		return
	}
	if l := g.levels[idx]; l != g.level {
		g.switchLevel(l)
	}
}

// levelIndex returns the dropdown index of the current level, 0 if absent.
func (g *Game) levelIndex() int {
	for i, l := range g.levels {
		if l.ID == g.level.ID {
			return i
		}
	}
	return 0
}

func (g *Game) finished() bool {
	st := g.board.State()
	return st == board.StateLost || st == board.StateWon
}

// Seconds returns the elapsed play time in whole seconds.
func (g *Game) Seconds() int {
	if g.tickRate <= 0 {
		return 0
	}
	return g.elapsedTicks / g.tickRate
}

// State returns the current game state. Score is the elapsed time in seconds.
// The open level dropdown freezes the timer but is not reported as a pause.
func (g *Game) State() core.GameState {
	st := g.board.State()
	return core.GameState{
		Score:    g.Seconds(),
		GameOver: st == board.StateLost || st == board.StateWon,
		Won:      st == board.StateWon,
		Paused:   g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Reveal | F: Flag | C: Chord | Tab: Levels | P: Pause | R: New | Q: Quit"
}
