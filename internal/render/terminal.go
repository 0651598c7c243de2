package render

import (
	"fmt"
	"strings"

	"go-tetris/internal/game"
	"go-tetris/internal/piece"

	"github.com/charmbracelet/lipgloss"
)

// Source is the read-only view of a game the renderers need. *game.Game
// satisfies it.
type Source interface {
	Width() int
	Height() int
	Rows() [][]piece.Cell
	Current() *game.Tetromino
	GhostY() (int, bool)
	Pool(n int) []*game.Tetromino
	Score() int
	HighScore() int
	Stats() *game.Stats
}

// Options controls what Board draws besides the well.
type Options struct {
	Preview int  // pooled pieces shown in the side panel
	Ghost   bool // draw where the current piece would land
	Status  string
}

const (
	blockGlyph = "██"
	ghostGlyph = "░░"
	emptyGlyph = " ."
)

var (
	wellStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("8"))
	panelStyle = lipgloss.NewStyle().Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Bold(true)
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type mark struct {
	cell  piece.Cell
	ghost bool
}

// compose lays the current piece and its ghost over a copy of the grid.
func compose(src Source, ghost bool) [][]mark {
	rows := src.Rows()
	out := make([][]mark, len(rows))
	for y, row := range rows {
		out[y] = make([]mark, len(row))
		for x, c := range row {
			out[y][x] = mark{cell: c}
		}
	}

	cur := src.Current()
	if cur == nil {
		return out
	}
	put := func(p game.Point, m mark) {
		if p.Y >= 0 && p.Y < len(out) && p.X >= 0 && p.X < len(out[p.Y]) {
			out[p.Y][p.X] = m
		}
	}
	if gy, ok := src.GhostY(); ok && ghost {
		x, _ := cur.Position()
		for _, p := range cur.CellsAt(x, gy) {
			put(p, mark{cell: piece.Block(cur.Color()), ghost: true})
		}
	}
	for _, p := range cur.Cells() {
		put(p, mark{cell: piece.Block(cur.Color())})
	}
	return out
}

func glyph(m mark) string {
	col, ok := m.cell.Color()
	if !ok {
		return emptyStyle.Render(emptyGlyph)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex()))
	if m.ghost {
		return style.Render(ghostGlyph)
	}
	return style.Render(blockGlyph)
}

// Board renders the well, the preview panel and the score lines as one
// string for a terminal view.
func Board(src Source, opts Options) string {
	var well strings.Builder
	for y, row := range compose(src, opts.Ghost) {
		if y > 0 {
			well.WriteByte('\n')
		}
		for _, m := range row {
			well.WriteString(glyph(m))
		}
	}

	panel := []string{
		labelStyle.Render("SCORE"),
		scoreStyle.Render(fmt.Sprint(src.Score())),
		labelStyle.Render("HIGH"),
		scoreStyle.Render(fmt.Sprint(src.HighScore())),
		labelStyle.Render("LINES"),
		fmt.Sprint(src.Stats().Lines),
	}
	if opts.Preview > 0 {
		panel = append(panel, "", labelStyle.Render("NEXT"))
		for _, t := range src.Pool(opts.Preview) {
			panel = append(panel, Piece(t), "")
		}
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top,
		wellStyle.Render(well.String()),
		panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, panel...)),
	)
	if opts.Status != "" {
		out += "\n" + opts.Status
	}
	return out
}

// Piece renders t's active rotation on its own, trimmed to occupied rows.
func Piece(t *game.Tetromino) string {
	var lines []string
	for _, row := range t.Current() {
		var b strings.Builder
		filled := false
		for _, c := range row {
			if c.IsEmpty() {
				b.WriteString("  ")
				continue
			}
			filled = true
			b.WriteString(glyph(mark{cell: c}))
		}
		if filled {
			lines = append(lines, strings.TrimRight(b.String(), " "))
		}
	}
	return strings.Join(lines, "\n")
}
