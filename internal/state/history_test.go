package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(0)
	g := newTestGrid(t)

	got, ok := h.Undo(g)
	assert.False(t, ok)
	assert.Same(t, g, got)

	got, ok = h.Redo(g)
	assert.False(t, ok)
	assert.Same(t, g, got)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistoryRecordTruncates(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < 3; i++ {
		h.Record(Entry{Redo: Patch{{Row: i, Col: 0, Color: red}}, Undo: Patch{{Row: i, Col: 0, Color: white}}})
	}
	g := newTestGrid(t)
	_, ok := h.Undo(g)
	require.True(t, ok)
	_, ok = h.Undo(g)
	require.True(t, ok)
	assert.Equal(t, 1, h.Index())
	assert.Equal(t, 3, h.Len())

	h.Record(Entry{Redo: Patch{{Row: 9, Col: 9, Color: blue}}})
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 2, h.Index())
	assert.False(t, h.CanRedo())
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(2)
	for i := 0; i < 5; i++ {
		h.Record(Entry{Redo: Patch{{Row: i, Col: 0, Color: red}}, Undo: Patch{{Row: i, Col: 0, Color: white}}})
	}
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 2, h.Index())

	g := newTestGrid(t)
	g, ok := h.Undo(g)
	require.True(t, ok)
	c, _ := g.At(4, 0)
	assert.Equal(t, white, c)
	_, ok = h.Undo(g)
	assert.True(t, ok)
	_, ok = h.Undo(g)
	assert.False(t, ok, "oldest entries were dropped")
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(0)
	h.Record(Entry{})
	h.Reset()
	assert.Zero(t, h.Len())
	assert.Zero(t, h.Index())
}
