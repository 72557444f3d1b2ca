package state

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// MaxDimension bounds the width and height of a grid.
const MaxDimension = 256

var (
	// ErrOutOfBounds is returned when a cell lies outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrDimensions is returned for grids that are empty, too large or ragged.
	ErrDimensions = errors.New("invalid grid dimensions")
)

// Grid is an immutable rectangle of cell colours. Edits produce a new Grid
// that shares every untouched row with its predecessor.
type Grid struct {
	width, height int
	rows          [][]Color
}

// NewGrid returns a width x height grid filled with fill.
func NewGrid(width, height int, fill Color) (*Grid, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	rows := make([][]Color, height)
	for r := range rows {
		row := make([]Color, width)
		for c := range row {
			row[c] = fill
		}
		rows[r] = row
	}
	return &Grid{width: width, height: height, rows: rows}, nil
}

// GridFromRows copies rows into a new grid. Every row must have the same
// non-zero length.
func GridFromRows(rows [][]Color) (*Grid, error) {
	height := len(rows)
	if height == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrDimensions)
	}
	width := len(rows[0])
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	g := &Grid{width: width, height: height, rows: make([][]Color, height)}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrDimensions, r, len(row), width)
		}
		g.rows[r] = append([]Color(nil), row...)
	}
	return g, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (row, col) addresses a cell of g.
func (g *Grid) InBounds(row, col int) bool {
	return InBounds(row, col, g.width, g.height)
}

// InBounds reports whether (row, col) lies inside a width x height grid.
func InBounds(row, col, width, height int) bool {
	return row >= 0 && row < height && col >= 0 && col < width
}

// At returns the colour of (row, col). Callers are expected to check bounds
// first; the error exists for the ones that do not.
func (g *Grid) At(row, col int) (Color, error) {
	if !g.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, row, col, g.width, g.height)
	}
	return g.rows[row][col], nil
}

// Rows returns a copy of the cell colours, row-major.
func (g *Grid) Rows() [][]Color {
	out := make([][]Color, g.height)
	for r, row := range g.rows {
		out[r] = append([]Color(nil), row...)
	}
	return out
}

// Diff returns the pre-image of patch: (row, col, previous) for every
// in-bounds pixel whose current colour differs from the one written.
func (g *Grid) Diff(patch Patch) Patch {
	var prev Patch
	for _, px := range patch {
		if !g.InBounds(px.Row, px.Col) {
			continue
		}
		if old := g.rows[px.Row][px.Col]; old != px.Color {
			prev = append(prev, Pixel{Row: px.Row, Col: px.Col, Color: old})
		}
	}
	return prev
}

// Apply returns the grid with patch written over it in order. Out-of-bounds
// pixels are ignored. When no pixel changes anything Apply returns g itself,
// so callers can detect no-ops by pointer comparison.
func (g *Grid) Apply(patch Patch) *Grid {
	changed := false
	for _, px := range patch {
		if g.InBounds(px.Row, px.Col) && g.rows[px.Row][px.Col] != px.Color {
			changed = true
			break
		}
	}
	if !changed {
		return g
	}

	next := &Grid{width: g.width, height: g.height, rows: make([][]Color, g.height)}
	copy(next.rows, g.rows)
	copied := make(map[int]bool)
	for _, px := range patch {
		if !g.InBounds(px.Row, px.Col) {
			continue
		}
		if !copied[px.Row] {
			next.rows[px.Row] = append([]Color(nil), g.rows[px.Row]...)
			copied[px.Row] = true
		}
		next.rows[px.Row][px.Col] = px.Color
	}
	return next
}

// Equal reports whether g and o have the same size and cell colours.
func (g *Grid) Equal(o *Grid) bool {
	if g == o {
		return true
	}
	if g == nil || o == nil || g.width != o.width || g.height != o.height {
		return false
	}
	for r := range g.rows {
		for c := range g.rows[r] {
			if g.rows[r][c] != o.rows[r][c] {
				return false
			}
		}
	}
	return true
}

// Image renders g with one pixel per cell.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	for r, row := range g.rows {
		for c, col := range row {
			img.SetNRGBA(c, r, col.NRGBA())
		}
	}
	return img
}

// CellAt maps a position on a surface drawn at stride units per cell to the
// cell under it. Positions left of or above the surface map to negative
// indices.
func CellAt(x, y, stride float32) Cell {
	return Cell{
		Row: int(math.Floor(float64(y / stride))),
		Col: int(math.Floor(float64(x / stride))),
	}
}
