package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	snapshotBackground = "#101018"
	snapshotGridLine   = "#2a2a3a"
	headerHeight       = 20
)

// Snapshot draws the well and the current piece as a PNG, cellSize pixels
// per cell, with the score printed above the well.
func Snapshot(w io.Writer, src Source, cellSize int) error {
	if cellSize < 4 {
		return fmt.Errorf("cell size %d too small", cellSize)
	}
	width := src.Width() * cellSize
	height := src.Height()*cellSize + headerHeight

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(snapshotBackground))

	for y, row := range compose(src, false) {
		for x, m := range row {
			col, ok := m.cell.Color()
			if !ok {
				continue
			}
			px := float64(x * cellSize)
			py := float64(y*cellSize + headerHeight)
			dc.SetHexColor(col.Hex())
			dc.DrawRectangle(px+1, py+1, float64(cellSize-2), float64(cellSize-2))
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("fill cell (%d,%d): %w", x, y, err)
			}
		}
	}

	dc.SetHexColor(snapshotGridLine)
	dc.SetLineWidth(1)
	dc.DrawLine(0, headerHeight-0.5, float64(width), headerHeight-0.5)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke header rule: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(canvas, canvas.Bounds(), dc.Image(), image.Point{}, xdraw.Src)
	label(canvas, fmt.Sprintf("SCORE %d  HIGH %d", src.Score(), src.HighScore()), 4, 14)

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func label(img *image.RGBA, text string, x, baseline int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}
