package board

import "fmt"

// MaxMines returns the largest mine count for which random placement can
// keep any first revealed cell and all of its neighbours clear.
func MaxMines(rows, cols int) int {
	if rows <= 0 || cols <= 0 {
		return 0
	}
	return rows*cols - min(rows, 3)*min(cols, 3)
}

// placeMines scatters the mines by rejection sampling, keeping the first
// revealed cell and its neighbours clear. When fewer cells remain outside
// that block than mines were asked for, placement is capped and Mines()
// reports the capped count.
func (b *Board) placeMines(exclude Pos) {
	b.mines = min(b.mines, b.rows*b.cols-b.zoneSize(exclude, 1))

	placed := 0
	for placed < b.mines {
		r := b.rng.Intn(b.rows)
		c := b.rng.Intn(b.cols)

		cell := b.at(r, c)
		if cell.Mine || chebyshev(Pos{Row: r, Col: c}, exclude) <= 1 {
			continue
		}
		cell.Mine = true
		placed++
	}
}

// zoneSize counts the in-bounds cells within radius of p.
func (b *Board) zoneSize(p Pos, radius int) int {
	n := 0
	for r := p.Row - radius; r <= p.Row+radius; r++ {
		for c := p.Col - radius; c <= p.Col+radius; c++ {
			if b.InBounds(r, c) {
				n++
			}
		}
	}
	return n
}

// computeAdjacent fills in the neighbour mine count of every safe cell.
func (b *Board) computeAdjacent() {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			cell := b.at(r, c)
			if cell.Mine {
				cell.Adjacent = UnknownCount
				continue
			}
			count := 0
			b.neighbors(r, c, func(nr, nc int) {
				if b.at(nr, nc).Mine {
					count++
				}
			})
			cell.Adjacent = count
		}
	}
}

// Arrange places mines at exactly the given positions instead of sampling
// them on the first reveal. The board must be unstarted and the layout must
// hold exactly Mines() distinct in-bounds positions.
func (b *Board) Arrange(mines ...Pos) error {
	if b.placed {
		return fmt.Errorf("board: %w: mines already placed", ErrInvalidLayout)
	}
	if len(mines) != b.mines {
		return fmt.Errorf("board: %w: got %d positions, want %d", ErrInvalidLayout, len(mines), b.mines)
	}

	seen := make(map[Pos]bool, len(mines))
	for _, p := range mines {
		if !b.InBounds(p.Row, p.Col) {
			return fmt.Errorf("board: %w: %v out of range", ErrInvalidLayout, p)
		}
		if seen[p] {
			return fmt.Errorf("board: %w: duplicate %v", ErrInvalidLayout, p)
		}
		seen[p] = true
	}

	for p := range seen {
		b.at(p.Row, p.Col).Mine = true
	}
	b.computeAdjacent()
	b.placed = true
	return nil
}

// MinePositions returns the positions of all mines in row-major order.
func (b *Board) MinePositions() []Pos {
	var out []Pos
	for i := range b.cells {
		if b.cells[i].Mine {
			out = append(out, Pos{Row: b.cells[i].Row, Col: b.cells[i].Col})
		}
	}
	return out
}

func chebyshev(a, b Pos) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}
