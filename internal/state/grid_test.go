package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	white Color = 0xffffffff
	red   Color = 0xff0000ff
	blue  Color = 0x0000ffff
)

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(16, 16, white)
	require.NoError(t, err)
	return g
}

func TestNewGridDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 16}, {16, 0}, {-1, 4}, {MaxDimension + 1, 1}} {
		_, err := NewGrid(dims[0], dims[1], white)
		assert.True(t, errors.Is(err, ErrDimensions), "%v", dims)
	}
	g := newTestGrid(t)
	assert.Equal(t, 16, g.Width())
	assert.Equal(t, 16, g.Height())
}

func TestGridFromRows(t *testing.T) {
	g, err := GridFromRows([][]Color{{red, blue}, {blue, red}})
	require.NoError(t, err)
	c, err := g.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, blue, c)

	_, err = GridFromRows([][]Color{{red, blue}, {blue}})
	assert.ErrorIs(t, err, ErrDimensions)
	_, err = GridFromRows(nil)
	assert.ErrorIs(t, err, ErrDimensions)
}

func TestAtOutOfBounds(t *testing.T) {
	g := newTestGrid(t)
	for _, cell := range []Cell{{-1, 0}, {0, -1}, {16, 0}, {0, 16}} {
		_, err := g.At(cell.Row, cell.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "%v", cell)
	}
}

func TestApplyNoOpReturnsSameGrid(t *testing.T) {
	g := newTestGrid(t)
	assert.Same(t, g, g.Apply(Patch{{Row: 3, Col: 3, Color: white}}))
	assert.Same(t, g, g.Apply(nil))
	assert.Same(t, g, g.Apply(Patch{{Row: 99, Col: 3, Color: red}}), "out-of-bounds pixels are ignored")
}

func TestApplyDoesNotMutate(t *testing.T) {
	g := newTestGrid(t)
	next := g.Apply(Patch{{Row: 2, Col: 5, Color: red}, {Row: 2, Col: 6, Color: blue}})
	require.NotSame(t, g, next)

	c, _ := g.At(2, 5)
	assert.Equal(t, white, c, "original grid changed")
	c, _ = next.At(2, 5)
	assert.Equal(t, red, c)
	c, _ = next.At(2, 6)
	assert.Equal(t, blue, c)

	// untouched rows are shared
	assert.Same(t, &g.rows[0][0], &next.rows[0][0])
	assert.NotSame(t, &g.rows[2][0], &next.rows[2][0])
}

func TestApplyLastWriteWins(t *testing.T) {
	g := newTestGrid(t)
	next := g.Apply(Patch{{Row: 1, Col: 1, Color: red}, {Row: 1, Col: 1, Color: blue}})
	c, _ := next.At(1, 1)
	assert.Equal(t, blue, c)
}

func TestDiff(t *testing.T) {
	g := newTestGrid(t).Apply(Patch{{Row: 0, Col: 0, Color: red}})
	patch := Patch{
		{Row: 0, Col: 0, Color: red},  // unchanged
		{Row: 0, Col: 1, Color: red},  // white -> red
		{Row: 20, Col: 1, Color: red}, // out of bounds
		{Row: 4, Col: 4, Color: blue}, // white -> blue
	}
	assert.Equal(t, Patch{{Row: 0, Col: 1, Color: white}, {Row: 4, Col: 4, Color: white}}, g.Diff(patch))
	assert.Empty(t, g.Diff(Patch{{Row: 0, Col: 0, Color: red}}))
}

func TestEqualAndRows(t *testing.T) {
	g := newTestGrid(t)
	next := g.Apply(Patch{{Row: 5, Col: 5, Color: red}})
	assert.False(t, g.Equal(next))

	back := next.Apply(Patch{{Row: 5, Col: 5, Color: white}})
	assert.True(t, g.Equal(back))

	rows := g.Rows()
	rows[0][0] = red
	c, _ := g.At(0, 0)
	assert.Equal(t, white, c, "Rows must return a copy")
}

func TestImage(t *testing.T) {
	g := newTestGrid(t).Apply(Patch{{Row: 2, Col: 7, Color: red}})
	img := g.Image()
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, red.NRGBA(), img.NRGBAAt(7, 2))
	assert.Equal(t, white.NRGBA(), img.NRGBAAt(2, 7))
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		x, y float32
		want Cell
	}{
		{0, 0, Cell{0, 0}},
		{39.9, 0, Cell{0, 0}},
		{40, 0, Cell{0, 1}},
		{85, 130, Cell{3, 2}},
		{-1, -1, Cell{-1, -1}},
		{640, 640, Cell{16, 16}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CellAt(tt.x, tt.y, 40), "(%v,%v)", tt.x, tt.y)
	}
}
