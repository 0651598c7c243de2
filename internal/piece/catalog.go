// Package piece holds the immutable tetromino catalog and the bag
// randomizer that deals kinds out of it.
package piece

import "fmt"

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	I Kind = iota
	J
	L
	O
	S
	T
	Z
)

// KindCount is the number of kinds in the catalog.
const KindCount = 7

var kindNames = [KindCount]string{"I", "J", "L", "O", "S", "T", "Z"}

func (k Kind) String() string {
	if int(k) >= KindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Color returns the color tag every block of k is drawn with.
func (k Kind) Color() Color {
	return kindColors[k]
}

// Kinds lists every kind in catalog order.
func Kinds() []Kind {
	return []Kind{I, J, L, O, S, T, Z}
}

// Color is an opaque tag carried by occupied cells. The engine never
// looks at it; renderers do.
type Color uint8

const (
	Cyan Color = iota
	Blue
	Orange
	Yellow
	Green
	Magenta
	Red
)

var colorInfo = []struct {
	name   string
	hex    string
	letter byte
}{
	Cyan:    {"cyan", "#00ffff", 'c'},
	Blue:    {"blue", "#0000ff", 'b'},
	Orange:  {"orange", "#ffa500", 'o'},
	Yellow:  {"yellow", "#ffff00", 'y'},
	Green:   {"green", "#008000", 'g'},
	Magenta: {"magenta", "#ff00ff", 'm'},
	Red:     {"red", "#ff0000", 'r'},
}

func (c Color) String() string {
	if int(c) >= len(colorInfo) {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorInfo[c].name
}

// Hex returns the CSS-style "#rrggbb" value of c.
func (c Color) Hex() string {
	return colorInfo[c].hex
}

// Letter returns the single character used for c in board layouts.
func (c Color) Letter() byte {
	return colorInfo[c].letter
}

// ColorFromLetter is the inverse of Color.Letter.
func ColorFromLetter(b byte) (Color, bool) {
	for i, info := range colorInfo {
		if info.letter == b {
			return Color(i), true
		}
	}
	return 0, false
}

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellBlock
	cellWall
)

// Cell is one square of a shape or of the playfield. The zero value is
// Empty.
type Cell struct {
	kind  cellKind
	color Color
}

var (
	// Empty is the only cell value a piece may be placed over.
	Empty = Cell{}
	// Wall is reported for coordinates outside the playfield.
	Wall = Cell{kind: cellWall}
)

// Block returns an occupied cell tagged with c.
func Block(c Color) Cell {
	return Cell{kind: cellBlock, color: c}
}

func (c Cell) IsEmpty() bool { return c.kind == cellEmpty }
func (c Cell) IsWall() bool { return c.kind == cellWall }

// Color returns the color tag of an occupied cell. ok is false for Empty
// and Wall.
func (c Cell) Color() (col Color, ok bool) {
	if c.kind != cellBlock {
		return 0, false
	}
	return c.color, true
}

// Rotation is one orientation of a shape: a rectangular grid indexed
// [row][column].
type Rotation [][]Cell

func (r Rotation) Width() int {
	if len(r) == 0 {
		return 0
	}
	return len(r[0])
}

func (r Rotation) Height() int { return len(r) }

// Shape is the ordered list of rotations of a kind. Shapes returned by
// ShapesFor are shared and must be treated as read-only.
type Shape []Rotation

// ShapesFor returns the catalog shape of k. Kinds outside the catalog are
// a programming error and panic.
func ShapesFor(k Kind) Shape {
	if int(k) >= KindCount {
		panic(fmt.Sprintf("piece: unknown kind %d", uint8(k)))
	}
	return catalog[k]
}

var kindColors = [KindCount]Color{
	I: Cyan,
	J: Blue,
	L: Orange,
	O: Yellow,
	S: Green,
	T: Magenta,
	Z: Red,
}

// Rotations are listed in the order TryRotateNext walks them. The first
// rotation is the spawn pose and its width decides the spawn column.
var catalog = [KindCount]Shape{
	I: mustShape(I,
		[]string{
			"..#",
			"..#",
			"..#",
			"..#",
		},
		[]string{
			"....",
			"....",
			"####",
		},
		[]string{
			".#",
			".#",
			".#",
			".#",
		},
		[]string{
			"....",
			"####",
		},
	),
	J: mustShape(J,
		[]string{
			".#",
			".#",
			"##",
		},
		[]string{
			"#..",
			"###",
		},
		[]string{
			".##",
			".#.",
			".#.",
		},
		[]string{
			"...",
			"###",
			"..#",
		},
	),
	L: mustShape(L,
		[]string{
			".#.",
			".#.",
			".##",
		},
		[]string{
			"...",
			"###",
			"#..",
		},
		[]string{
			"##",
			".#",
			".#",
		},
		[]string{
			"..#",
			"###",
		},
	),
	O: mustShape(O,
		[]string{
			"##",
			"##",
		},
	),
	S: mustShape(S,
		[]string{
			".#.",
			".##",
			"..#",
		},
		[]string{
			"...",
			".##",
			"##.",
		},
		[]string{
			"#.",
			"##",
			".#",
		},
		[]string{
			".##",
			"##.",
		},
	),
	T: mustShape(T,
		[]string{
			".#.",
			"###",
		},
		[]string{
			".#.",
			".##",
			".#.",
		},
		[]string{
			"...",
			"###",
			".#.",
		},
		[]string{
			".#",
			"##",
			".#",
		},
	),
	Z: mustShape(Z,
		[]string{
			"..#",
			".##",
			".#.",
		},
		[]string{
			"...",
			"##.",
			".##",
		},
		[]string{
			".#",
			"##",
			"#.",
		},
		[]string{
			"##.",
			".##",
		},
	),
}

// mustShape builds a Shape from "#"/"." patterns. Malformed patterns are
// authoring errors in this file, so they panic at init.
func mustShape(k Kind, patterns ...[]string) Shape {
	if len(patterns) == 0 || len(patterns) > 4 {
		panic(fmt.Sprintf("piece: %s has %d rotations", k, len(patterns)))
	}
	block := Block(kindColors[k])
	shape := make(Shape, len(patterns))
	for i, rows := range patterns {
		rot := make(Rotation, len(rows))
		filled := 0
		for y, row := range rows {
			if len(row) != len(rows[0]) {
				panic(fmt.Sprintf("piece: %s rotation %d is not rectangular", k, i))
			}
			rot[y] = make([]Cell, len(row))
			for x := 0; x < len(row); x++ {
				switch row[x] {
				case '#':
					rot[y][x] = block
					filled++
				case '.':
				default:
					panic(fmt.Sprintf("piece: %s rotation %d has bad cell %q", k, i, row[x]))
				}
			}
		}
		if filled != 4 {
			panic(fmt.Sprintf("piece: %s rotation %d has %d cells", k, i, filled))
		}
		shape[i] = rot
	}
	return shape
}
