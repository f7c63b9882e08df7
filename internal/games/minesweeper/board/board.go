// Package board implements the Minesweeper grid engine: deferred mine
// placement, neighbour counting, flood-fill reveal, flagging and win
// detection. It has no knowledge of rendering or input devices.
package board

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gammazero/deque"
)

// UnknownCount is the Adjacent value of a cell whose count is not computed.
const UnknownCount = -1

var (
	// ErrInvalidSize is returned for non-positive board dimensions.
	ErrInvalidSize = errors.New("invalid board size")
	// ErrTooManyMines is returned when the mine count does not fit the grid.
	ErrTooManyMines = errors.New("too many mines")
	// ErrInvalidLayout is returned by Arrange for a bad explicit layout.
	ErrInvalidLayout = errors.New("invalid mine layout")
)

// RandSource is the random source used for mine placement.
// *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Pos is a grid coordinate.
type Pos struct {
	Row, Col int
}

// Cell is a snapshot of one grid position.
type Cell struct {
	Row, Col int
	Mine     bool
	Flagged  bool
	Open     bool
	Adjacent int // UnknownCount until mines are placed
}

// State is the overall board state.
type State int

const (
	StateUnstarted State = iota
	StateInProgress
	StateLost
	StateWon
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateInProgress:
		return "in_progress"
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Board is a rows x cols grid of cells plus game counters.
// A Board is owned by a single goroutine.
type Board struct {
	rows      int
	cols      int
	mines     int
	requested int // Mine count asked for at construction
	flags     int

	placed   bool
	lost     bool
	exploded Pos

	cells []Cell
	rng   RandSource
}

// New creates a board with all cells closed and no mines placed.
// Mines are placed on the first Reveal so the first click and its
// neighbours are always safe. Any count below rows*cols is accepted so that
// Arrange can lay out dense boards; see MaxMines for random placement.
// A nil rng falls back to a time-seeded source.
func New(rows, cols, mines int, rng RandSource) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("board: %w: %dx%d", ErrInvalidSize, rows, cols)
	}
	if mines < 0 || mines >= rows*cols {
		return nil, fmt.Errorf("board: %w: %d mines on %dx%d", ErrTooManyMines, mines, rows, cols)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Board{
		rows:      rows,
		cols:      cols,
		mines:     mines,
		requested: mines,
		cells:     make([]Cell, rows*cols),
		rng:       rng,
	}
	b.Reset()
	return b, nil
}

// Reset returns every cell to its constructed state and re-arms mine
// placement for a new first move.
func (b *Board) Reset() {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			b.cells[r*b.cols+c] = Cell{Row: r, Col: c, Adjacent: UnknownCount}
		}
	}
	b.mines = b.requested
	b.flags = 0
	b.placed = false
	b.lost = false
	b.exploded = Pos{Row: -1, Col: -1}
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

// Mines returns the total number of mines. On a board denser than
// MaxMines allows, the first reveal lowers it to the number actually placed.
func (b *Board) Mines() int {
	return b.mines
}

// InBounds reports whether (row, col) is on the grid.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

func (b *Board) at(row, col int) *Cell {
	return &b.cells[row*b.cols+col]
}

// Cell returns a copy of the cell at (row, col).
// ok is false for out-of-range coordinates.
func (b *Board) Cell(row, col int) (cell Cell, ok bool) {
	if !b.InBounds(row, col) {
		return Cell{}, false
	}
	return *b.at(row, col), true
}

// IsOpen reports whether the cell is open. False when out of range.
func (b *Board) IsOpen(row, col int) bool {
	return b.InBounds(row, col) && b.at(row, col).Open
}

// IsFlagged reports whether the cell is flagged. False when out of range.
func (b *Board) IsFlagged(row, col int) bool {
	return b.InBounds(row, col) && b.at(row, col).Flagged
}

// IsMine reports whether the cell holds a mine. False when out of range.
func (b *Board) IsMine(row, col int) bool {
	return b.InBounds(row, col) && b.at(row, col).Mine
}

// AdjacentMines returns the neighbour mine count, or UnknownCount if it
// has not been computed or the coordinates are out of range.
func (b *Board) AdjacentMines(row, col int) int {
	if !b.InBounds(row, col) {
		return UnknownCount
	}
	return b.at(row, col).Adjacent
}

// RemainingFlags returns mines minus flags placed. It may be negative.
func (b *Board) RemainingFlags() int {
	return b.mines - b.flags
}

// FlagCount returns the number of flagged cells.
func (b *Board) FlagCount() int {
	return b.flags
}

// FirstMoveDone reports whether mines have been placed.
func (b *Board) FirstMoveDone() bool {
	return b.placed
}

// IsLost reports whether a mine has been opened.
func (b *Board) IsLost() bool {
	return b.lost
}

// Exploded returns the mine that ended the game and whether there is one.
func (b *Board) Exploded() (Pos, bool) {
	return b.exploded, b.lost
}

// IsWon reports whether every mine is flagged and every other cell is open.
// Flagging all mines is required; opening all safe cells is not enough.
func (b *Board) IsWon() bool {
	if !b.placed || b.lost {
		return false
	}
	for i := range b.cells {
		c := &b.cells[i]
		if c.Mine && !c.Flagged {
			return false
		}
		if !c.Mine && !c.Open {
			return false
		}
	}
	return true
}

// State derives the overall board state.
func (b *Board) State() State {
	switch {
	case b.lost:
		return StateLost
	case !b.placed:
		return StateUnstarted
	case b.IsWon():
		return StateWon
	default:
		return StateInProgress
	}
}

// OpenCount returns the number of open cells.
func (b *Board) OpenCount() int {
	n := 0
	for i := range b.cells {
		if b.cells[i].Open {
			n++
		}
	}
	return n
}

// ClosedCount returns the number of cells not yet opened.
func (b *Board) ClosedCount() int {
	return len(b.cells) - b.OpenCount()
}

// terminal reports whether the board no longer accepts moves.
func (b *Board) terminal() bool {
	return b.lost || b.IsWon()
}

// neighbors calls fn for every in-bounds neighbour of (row, col).
func (b *Board) neighbors(row, col int, fn func(r, c int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.InBounds(r, c) {
				fn(r, c)
			}
		}
	}
}

// Reveal opens the cell at (row, col) and returns how many cells were opened.
// The first call on a fresh board places the mines around it. Opening a zero
// cell cascades to its neighbours; flagged cells are never opened.
func (b *Board) Reveal(row, col int) int {
	if !b.InBounds(row, col) || b.terminal() {
		return 0
	}
	cell := b.at(row, col)
	if cell.Open || cell.Flagged {
		return 0
	}

	if !b.placed {
		b.placeMines(Pos{Row: row, Col: col})
		b.computeAdjacent()
		b.placed = true
	}

	var queue deque.Deque[Pos]
	queue.PushBack(Pos{Row: row, Col: col})
	return b.flood(&queue)
}

// Chord opens every closed, unflagged neighbour of an open numbered cell
// once the number of flagged neighbours matches its count.
func (b *Board) Chord(row, col int) int {
	if !b.InBounds(row, col) || b.terminal() {
		return 0
	}
	cell := b.at(row, col)
	if !cell.Open || cell.Mine || cell.Adjacent <= 0 {
		return 0
	}

	flagged := 0
	b.neighbors(row, col, func(r, c int) {
		if b.at(r, c).Flagged {
			flagged++
		}
	})
	if flagged != cell.Adjacent {
		return 0
	}

	var queue deque.Deque[Pos]
	b.neighbors(row, col, func(r, c int) {
		n := b.at(r, c)
		if !n.Open && !n.Flagged {
			queue.PushBack(Pos{Row: r, Col: c})
		}
	})
	return b.flood(&queue)
}

// flood drains the work queue, opening cells and expanding zero cells.
func (b *Board) flood(queue *deque.Deque[Pos]) int {
	opened := 0
	for queue.Len() > 0 {
		p := queue.PopFront()
		cell := b.at(p.Row, p.Col)
		if cell.Open || cell.Flagged {
			continue
		}

		cell.Open = true
		opened++

		if cell.Mine {
			if !b.lost {
				b.lost = true
				b.exploded = p
			}
			continue
		}

		if cell.Adjacent == 0 {
			b.neighbors(p.Row, p.Col, func(r, c int) {
				n := b.at(r, c)
				if !n.Open && !n.Flagged {
					queue.PushBack(Pos{Row: r, Col: c})
				}
			})
		}
	}
	return opened
}

// ToggleFlag flips the flag on a closed cell and reports whether it changed.
func (b *Board) ToggleFlag(row, col int) bool {
	if !b.InBounds(row, col) || b.terminal() {
		return false
	}
	cell := b.at(row, col)
	if cell.Open {
		return false
	}

	cell.Flagged = !cell.Flagged
	if cell.Flagged {
		b.flags++
	} else {
		b.flags--
	}
	return true
}
