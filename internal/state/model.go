package state

// Cell addresses one grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Pixel is a single proposed write: paint Cell with Color.
type Pixel struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Color Color `json:"color"`
}

// Cell returns the coordinates of the write.
func (p Pixel) Cell() Cell { return Cell{Row: p.Row, Col: p.Col} }

// Patch is an ordered list of writes describing one logical edit.
type Patch []Pixel

// Cells returns the coordinates touched by the patch, in order.
func (p Patch) Cells() []Cell {
	cells := make([]Cell, 0, len(p))
	for _, px := range p {
		cells = append(cells, px.Cell())
	}
	return cells
}

// Clone returns a copy that does not share storage with p.
func (p Patch) Clone() Patch {
	if p == nil {
		return nil
	}
	out := make(Patch, len(p))
	copy(out, p)
	return out
}

// Preview is the transient overlay drawn on top of the committed grid.
// It is never persisted.
type Preview struct {
	Cells  Patch // previewed tool output, nil when nothing is in progress
	Cursor Cell  // hovered cell, possibly out of bounds
}

// Entry pairs the patches that reverse and replay one committed edit.
type Entry struct {
	Undo Patch
	Redo Patch
}
