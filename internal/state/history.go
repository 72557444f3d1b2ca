package state

// History is a linear undo/redo stack. index counts the entries currently
// applied: index undos and len(entries)-index redos are available.
type History struct {
	entries []Entry
	index   int
	limit   int
}

// NewHistory returns an empty stack keeping at most limit entries
// (0 means unlimited).
func NewHistory(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Record appends e, discarding any entries that could have been redone.
func (h *History) Record(e Entry) {
	if h.index < len(h.entries) {
		clear(h.entries[h.index:])
		h.entries = h.entries[:h.index]
	}
	h.entries = append(h.entries, e)
	h.index++

	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		clear(h.entries[:drop])
		h.entries = h.entries[drop:]
		h.index -= drop
	}
}

// Undo reverts the most recently applied entry on g. It reports false and
// returns g unchanged when there is nothing to undo.
func (h *History) Undo(g *Grid) (*Grid, bool) {
	if h.index == 0 {
		return g, false
	}
	h.index--
	return g.Apply(h.entries[h.index].Undo), true
}

// Redo replays the next undone entry on g. It reports false and returns g
// unchanged when there is nothing to redo.
func (h *History) Redo(g *Grid) (*Grid, bool) {
	if h.index == len(h.entries) {
		return g, false
	}
	next := g.Apply(h.entries[h.index].Redo)
	h.index++
	return next, true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.index < len(h.entries) }

// Len returns the number of recorded entries.
func (h *History) Len() int { return len(h.entries) }

// Index returns the number of entries currently applied.
func (h *History) Index() int { return h.index }

// Reset drops every entry.
func (h *History) Reset() {
	clear(h.entries)
	h.entries = h.entries[:0]
	h.index = 0
}
