package render

import (
	"image"

	"PixelBoard/internal/state"
)

const (
	checkerLight state.Color = 0xffffffff
	checkerDark  state.Color = 0xddddddff
	outlineWidth             = 2
)

// Paint draws a full frame: the checkerboard, the committed grid, the
// previewed cells and finally the cursor outline.
func Paint(s Surface, g *state.Grid, p state.Preview) {
	s.Clear()
	paintChecker(s)

	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			col, _ := g.At(r, c)
			s.FillCell(r, c, col)
		}
	}

	for _, px := range p.Cells {
		if g.InBounds(px.Row, px.Col) {
			s.FillCell(px.Row, px.Col, px.Color)
		}
	}

	s.StrokeCell(p.Cursor.Row, p.Cursor.Col, CursorColor(g, p.Cursor), outlineWidth)
}

// CursorColor is the outline colour for the cursor at c: the inverse of the
// cell underneath, or black outside the grid.
func CursorColor(g *state.Grid, c state.Cell) state.Color {
	under, err := g.At(c.Row, c.Col)
	if err != nil {
		return state.Black
	}
	return under.Invert()
}

// paintChecker fills the background with squares of half a cell.
func paintChecker(s Surface) {
	half := max(s.Stride()/2, 1)
	b := s.Bounds()
	s.FillRect(b, checkerLight)
	for y, row := b.Min.Y, 0; y < b.Max.Y; y, row = y+half, row+1 {
		for x, col := b.Min.X, 0; x < b.Max.X; x, col = x+half, col+1 {
			if (row+col)%2 == 1 {
				s.FillRect(image.Rect(x, y, x+half, y+half), checkerDark)
			}
		}
	}
}
