package game

import "go-tetris/internal/piece"

// Fitter decides whether a tetromino may occupy a position. *Game is the
// Fitter used in play.
type Fitter interface {
	FitsAt(t *Tetromino, x, y int) bool
}

// Tetromino is a positioned, rotatable instance of a catalog shape. Its
// position and rotation only change through the Try* methods, each of
// which asks a Fitter first.
type Tetromino struct {
	kind     piece.Kind
	shape    piece.Shape
	rotation int
	x, y     int
}

// NewTetromino places a tetromino of kind k in its first rotation with
// its top-left corner at (x, y).
func NewTetromino(k piece.Kind, x, y int) *Tetromino {
	return &Tetromino{kind: k, shape: piece.ShapesFor(k), x: x, y: y}
}

func (t *Tetromino) Kind() piece.Kind { return t.kind }
func (t *Tetromino) Color() piece.Color { return t.kind.Color() }
func (t *Tetromino) Rotation() int { return t.rotation }

// Position returns the grid coordinates of the shape's top-left corner.
func (t *Tetromino) Position() (x, y int) { return t.x, t.y }

// Current returns the grid of the active rotation.
func (t *Tetromino) Current() piece.Rotation {
	return t.shape[t.rotation]
}

func (t *Tetromino) Width() int { return t.Current().Width() }
func (t *Tetromino) Height() int { return t.Current().Height() }

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// CellsAt returns the grid coordinates of the occupied cells of the active
// rotation, as if the tetromino stood at (x, y).
func (t *Tetromino) CellsAt(x, y int) []Point {
	points := make([]Point, 0, 4)
	for relY, row := range t.Current() {
		for relX, c := range row {
			if c.IsEmpty() {
				continue
			}
			points = append(points, Point{X: x + relX, Y: y + relY})
		}
	}
	return points
}

// Cells returns the grid coordinates of the occupied cells at the current
// position.
func (t *Tetromino) Cells() []Point {
	return t.CellsAt(t.x, t.y)
}

// TryMove shifts the tetromino by (dx, dy) if it fits there. On failure
// nothing changes.
func (t *Tetromino) TryMove(f Fitter, dx, dy int) bool {
	if !f.FitsAt(t, t.x+dx, t.y+dy) {
		return false
	}
	t.x += dx
	t.y += dy
	return true
}

// TryRotateNext advances to the next rotation if it fits in place. There
// is no kick search: a colliding rotation simply fails.
func (t *Tetromino) TryRotateNext(f Fitter) bool {
	return t.tryRotate(f, 1)
}

// TryRotatePrevious goes back one rotation if it fits in place.
func (t *Tetromino) TryRotatePrevious(f Fitter) bool {
	return t.tryRotate(f, -1)
}

func (t *Tetromino) tryRotate(f Fitter, step int) bool {
	n := len(t.shape)
	old := t.rotation
	t.rotation = ((t.rotation+step)%n + n) % n
	if f.FitsAt(t, t.x, t.y) {
		return true
	}
	t.rotation = old
	return false
}

// DropDistance returns how many rows the tetromino can fall before it
// would stop. It does not move the tetromino.
func (t *Tetromino) DropDistance(f Fitter) int {
	n := 0
	for f.FitsAt(t, t.x, t.y+n+1) {
		n++
	}
	return n
}

// Update runs one gravity step and reports whether the tetromino has
// settled, i.e. could not move down.
func (t *Tetromino) Update(f Fitter) bool {
	return !t.TryMove(f, 0, 1)
}
