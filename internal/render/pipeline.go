package render

import (
	"image"
	"slices"
	"sync"

	"PixelBoard/internal/state"
)

// Pipeline caches the last painted frame. Updates only mark it stale; the
// repaint happens when the next frame is requested, so several changes
// between two frames cost one repaint.
type Pipeline struct {
	mu       sync.Mutex
	surface  *ImageSurface
	grid     *state.Grid
	preview  state.Preview
	dirty    bool
	repaints int
}

// NewPipeline prepares a pipeline for a width x height grid drawn at stride
// pixels per cell.
func NewPipeline(width, height, stride int) *Pipeline {
	return &Pipeline{surface: NewImageSurface(width, height, stride), dirty: true}
}

// Update installs the grid and preview to draw. Grids are compared by
// identity: an edit that changed nothing hands back the same grid and does
// not cause a repaint.
func (p *Pipeline) Update(g *state.Grid, pv state.Preview) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g != p.grid || pv.Cursor != p.preview.Cursor || !slices.Equal(pv.Cells, p.preview.Cells) {
		p.dirty = true
	}
	p.grid = g
	p.preview = state.Preview{Cells: pv.Cells.Clone(), Cursor: pv.Cursor}
}

// Request forces a repaint on the next frame.
func (p *Pipeline) Request() {
	p.mu.Lock()
	p.dirty = true
	p.mu.Unlock()
}

// Frame returns the current picture, repainting only if something changed.
// The returned image is owned by the pipeline and overwritten by later
// repaints.
func (p *Pipeline) Frame() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dirty && p.grid != nil {
		Paint(p.surface, p.grid, p.preview)
		p.dirty = false
		p.repaints++
	}
	return p.surface.Image()
}

// Repaints returns how many frames were actually painted.
func (p *Pipeline) Repaints() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.repaints
}

// Size returns the frame size in pixels.
func (p *Pipeline) Size() image.Point {
	return p.surface.Bounds().Size()
}
