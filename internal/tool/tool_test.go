package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PixelBoard/internal/state"
)

var in = Input{Color: 0xff0000ff, Width: 16, Height: 16}

func at(t EventType, row, col int) Event {
	return Event{Type: t, Cell: state.Cell{Row: row, Col: col}}
}

func TestKindString(t *testing.T) {
	for _, k := range []Kind{Brush, Line} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("bucket")
	assert.Error(t, err)
}

func TestBrushCommitsWhileHeld(t *testing.T) {
	m := New(Brush)

	m, fx := m.Step(at(Move, 1, 1), in)
	assert.Nil(t, fx.Commit, "hover must not paint")

	m, fx = m.Step(at(Down, 1, 1), in)
	assert.True(t, m.Down)
	assert.Equal(t, state.Patch{{Row: 1, Col: 1, Color: in.Color}}, fx.Commit)

	m, fx = m.Step(at(Move, 1, 2), in)
	assert.Equal(t, state.Patch{{Row: 1, Col: 2, Color: in.Color}}, fx.Commit)

	m, fx = m.Step(at(Up, 1, 2), in)
	assert.False(t, m.Down)
	assert.Nil(t, fx.Commit)

	_, fx = m.Step(at(Move, 1, 3), in)
	assert.Nil(t, fx.Commit)
}

func TestBrushIgnoresOutOfBounds(t *testing.T) {
	m := New(Brush)
	m, fx := m.Step(at(Down, -1, 3), in)
	assert.True(t, m.Down)
	assert.Nil(t, fx.Commit)

	_, fx = m.Step(at(Move, 3, 16), in)
	assert.Nil(t, fx.Commit)
}

func TestLineTwoClickCommit(t *testing.T) {
	m := New(Line)

	m, fx := m.Step(at(Down, 2, 2), in)
	require.True(t, m.Anchored())
	assert.Nil(t, fx.Commit)
	assert.True(t, fx.PreviewChanged)
	assert.Equal(t, []state.Cell{{Row: 2, Col: 2}}, fx.Preview.Cells())

	m, fx = m.Step(at(Up, 2, 2), in)
	assert.True(t, m.Anchored(), "release does not finish a line")
	assert.Nil(t, fx.Commit)

	m, fx = m.Step(at(Move, 2, 2), in)
	assert.True(t, fx.PreviewChanged)
	assert.Nil(t, fx.Commit)

	m, fx = m.Step(at(Move, 2, 6), in)
	assert.True(t, fx.PreviewChanged)
	assert.Nil(t, fx.Commit)
	assert.Len(t, fx.Preview, 5)

	m, fx = m.Step(at(Down, 2, 6), in)
	assert.False(t, m.Anchored())
	assert.Nil(t, m.Preview)
	assert.True(t, fx.PreviewChanged)
	assert.Nil(t, fx.Preview)
	assert.Equal(t, []state.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 4}, {Row: 2, Col: 5}, {Row: 2, Col: 6}}, fx.Commit.Cells())
}

func TestLineAnchorFixedEndFollows(t *testing.T) {
	m := New(Line)
	m, _ = m.Step(at(Down, 0, 0), in)
	m, fx := m.Step(at(Move, 0, 3), in)
	assert.Equal(t, state.Cell{Row: 0, Col: 3}, fx.Preview[len(fx.Preview)-1].Cell())
	_, fx = m.Step(at(Move, 3, 0), in)
	assert.Equal(t, state.Cell{Row: 0, Col: 0}, fx.Preview[0].Cell())
	assert.Equal(t, state.Cell{Row: 3, Col: 0}, fx.Preview[len(fx.Preview)-1].Cell())
}

func TestLineIgnoresOutOfBoundsAnchor(t *testing.T) {
	m := New(Line)
	m, fx := m.Step(at(Down, 20, 20), in)
	assert.False(t, m.Anchored())
	assert.False(t, fx.PreviewChanged)
}

func TestLineClipsOutOfBoundsEnd(t *testing.T) {
	m := New(Line)
	m, _ = m.Step(at(Down, 5, 13), in)
	_, fx := m.Step(at(Down, 5, 40), in)
	assert.Equal(t, []state.Cell{{Row: 5, Col: 13}, {Row: 5, Col: 14}, {Row: 5, Col: 15}}, fx.Commit.Cells())
}

func TestSwitchDiscardsAnchor(t *testing.T) {
	m := New(Line)
	m, _ = m.Step(at(Down, 4, 4), in)
	m, _ = m.Step(at(Move, 4, 9), in)
	require.True(t, m.Anchored())

	m, fx := m.Switch(Brush)
	assert.Equal(t, Brush, m.Kind)
	assert.False(t, m.Anchored())
	assert.Nil(t, m.Preview)
	assert.True(t, fx.PreviewChanged)
	assert.Nil(t, fx.Preview)

	m, _ = m.Switch(Line)
	_, fx = m.Step(at(Move, 4, 12), in)
	assert.False(t, fx.PreviewChanged, "no dangling line after switching back")
}
