package state

import (
	"sync"

	"PixelBoard/internal/logging"
)

// ChangeFunc is called after every change of a document's grid.
type ChangeFunc func(g *Grid, revision uint64)

// Document is the committed picture: the current grid plus its edit history.
// Edits happen on a single goroutine; Snapshot may be called from any.
type Document struct {
	id       string
	mu       sync.RWMutex
	grid     *Grid
	history  *History
	revision Revision
	onChange []ChangeFunc
}

// NewDocument wraps g with an empty history holding at most historyLimit
// entries (0 means unlimited).
func NewDocument(g *Grid, historyLimit int) *Document {
	return &Document{
		id:      newDocumentID(),
		grid:    g,
		history: NewHistory(historyLimit),
	}
}

// ID returns the document's unique id.
func (d *Document) ID() string { return d.id }

// SetID replaces the id, used when a saved project is reopened.
func (d *Document) SetID(id string) {
	if id != "" {
		d.id = id
	}
}

// Grid returns the current grid.
func (d *Document) Grid() *Grid {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.grid
}

// Snapshot returns the current grid and its revision together.
func (d *Document) Snapshot() (*Grid, uint64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.grid, d.revision.Load()
}

// History exposes the undo stack for inspection.
func (d *Document) History() *History { return d.history }

// OnChange registers fn to run after every grid change.
func (d *Document) OnChange(fn ChangeFunc) {
	d.onChange = append(d.onChange, fn)
}

// Commit applies patch as one undoable edit. Patches that would not change
// any cell leave both the grid and the history untouched and report false.
func (d *Document) Commit(patch Patch) bool {
	g := d.Grid()
	inverse := g.Diff(patch)
	if len(inverse) == 0 {
		return false
	}
	next := g.Apply(patch)
	d.history.Record(Entry{Undo: inverse, Redo: patch.Clone()})
	logging.Logger().Debug("commit", "component", "document", "pixels", len(patch), "changed", len(inverse))
	d.swap(next)
	return true
}

// Undo reverts the latest applied edit.
func (d *Document) Undo() bool {
	next, ok := d.history.Undo(d.Grid())
	if ok {
		d.swap(next)
	}
	return ok
}

// Redo replays the latest undone edit.
func (d *Document) Redo() bool {
	next, ok := d.history.Redo(d.Grid())
	if ok {
		d.swap(next)
	}
	return ok
}

// Replace installs g as a fresh picture and clears the history.
func (d *Document) Replace(g *Grid) {
	d.history.Reset()
	d.swap(g)
}

func (d *Document) swap(g *Grid) {
	d.mu.Lock()
	d.grid = g
	rev := d.revision.Next()
	d.mu.Unlock()
	for _, fn := range d.onChange {
		fn(g, rev)
	}
}
