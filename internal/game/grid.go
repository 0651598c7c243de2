package game

import "go-tetris/internal/piece"

// Grid is the playfield of locked blocks. Its size never changes.
type Grid struct {
	width  int
	height int
	cells  [][]piece.Cell
}

// NewGrid returns an empty width x height grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height, cells: make([][]piece.Cell, height)}
	for y := range g.cells {
		g.cells[y] = make([]piece.Cell, width)
	}
	return g
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y), or piece.Wall when it is off the grid.
func (g *Grid) At(x, y int) piece.Cell {
	if !g.InBounds(x, y) {
		return piece.Wall
	}
	return g.cells[y][x]
}

// Set writes c at (x, y). Off-grid writes are dropped and report false.
func (g *Grid) Set(x, y int, c piece.Cell) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y][x] = c
	return true
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		clear(row)
	}
}

// RowFull reports whether row y has no empty cell.
func (g *Grid) RowFull(y int) bool {
	if y < 0 || y >= g.height {
		return false
	}
	for _, c := range g.cells[y] {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

// RemoveRow deletes row y, shifts every row above it down by one and
// leaves an empty row at the top. Rows below y keep their index.
func (g *Grid) RemoveRow(y int) {
	if y < 0 || y >= g.height {
		return
	}
	removed := g.cells[y]
	copy(g.cells[1:y+1], g.cells[:y])
	clear(removed)
	g.cells[0] = removed
}

// Occupied counts non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if !c.IsEmpty() {
				n++
			}
		}
	}
	return n
}

// Rows returns a copy of the grid contents indexed [y][x].
func (g *Grid) Rows() [][]piece.Cell {
	rows := make([][]piece.Cell, g.height)
	for y, row := range g.cells {
		rows[y] = append([]piece.Cell(nil), row...)
	}
	return rows
}
