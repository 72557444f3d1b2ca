// Package editor ties the document, the active tool and the preview overlay
// together. It is independent of any windowing toolkit: the UI feeds it
// pointer positions and asks it to undo or redo.
package editor

import (
	"PixelBoard/internal/logging"
	"PixelBoard/internal/state"
	"PixelBoard/internal/tool"
)

// Options configures a new Editor.
type Options struct {
	// Stride is the size of one cell on the surface, in surface units.
	Stride float32
	Color  state.Color
	Tool   tool.Kind
}

// Editor owns the pointer state machine and the preview of one document.
// All methods must be called from the UI goroutine.
type Editor struct {
	doc      *state.Document
	stride   float32
	color    state.Color
	machine  tool.Machine
	preview  state.Preview
	bindings *binding
	width    int
	height   int
	onRedraw []func()
}

// New returns an editor for doc. Call Attach before feeding pointer events.
func New(doc *state.Document, opts Options) *Editor {
	if opts.Stride <= 0 {
		opts.Stride = 1
	}
	g := doc.Grid()
	e := &Editor{
		doc:     doc,
		stride:  opts.Stride,
		color:   opts.Color,
		machine: tool.New(opts.Tool),
		width:   g.Width(),
		height:  g.Height(),
	}
	doc.OnChange(e.documentChanged)
	return e
}

// Document returns the edited document.
func (e *Editor) Document() *state.Document { return e.doc }

// Stride returns the cell size used to map pointer positions.
func (e *Editor) Stride() float32 { return e.stride }

// Tool returns the selected tool.
func (e *Editor) Tool() tool.Kind { return e.machine.Kind }

// Color returns the selected colour.
func (e *Editor) Color() state.Color { return e.color }

// SetColor selects the colour used by the next pointer event.
func (e *Editor) SetColor(c state.Color) { e.color = c }

// Preview returns the current overlay.
func (e *Editor) Preview() state.Preview { return e.preview }

// Machine returns a copy of the tool state machine.
func (e *Editor) Machine() tool.Machine { return e.machine }

// OnRedraw registers fn to run whenever the grid or the overlay changed.
func (e *Editor) OnRedraw(fn func()) {
	e.onRedraw = append(e.onRedraw, fn)
}

// SetTool switches tools, dropping any half-drawn line. If pointer handlers
// are attached they are rebound for the new tool.
func (e *Editor) SetTool(k tool.Kind) {
	if k == e.machine.Kind {
		return
	}
	attached := e.bindings != nil
	e.Detach()
	e.machine, _ = e.machine.Switch(k)
	logging.Logger().Info("tool selected", "component", "editor", "tool", k.String())
	if attached {
		e.Attach()
	}
}

// Undo reverts the last committed edit. It reports false when there is
// nothing to undo.
func (e *Editor) Undo() bool {
	ok := e.doc.Undo()
	logging.Logger().Debug("undo", "component", "editor", "ok", ok)
	return ok
}

// Redo replays the last undone edit. It reports false when there is
// nothing to redo.
func (e *Editor) Redo() bool {
	ok := e.doc.Redo()
	logging.Logger().Debug("redo", "component", "editor", "ok", ok)
	return ok
}

// PointerDown handles a primary-button press at surface position (x, y).
func (e *Editor) PointerDown(x, y float32) {
	e.dispatch(tool.Down, x, y)
}

// PointerMove handles pointer motion, with or without a held button.
func (e *Editor) PointerMove(x, y float32) {
	e.dispatch(tool.Move, x, y)
}

// PointerUp handles a primary-button release.
func (e *Editor) PointerUp(x, y float32) {
	e.dispatch(tool.Up, x, y)
}

func (e *Editor) dispatch(t tool.EventType, x, y float32) {
	if e.bindings == nil {
		return
	}
	e.bindings.handle(t, state.CellAt(x, y, e.stride))
}

func (e *Editor) step(ev tool.Event) {
	redraw := false
	if ev.Type == tool.Move && ev.Cell != e.preview.Cursor {
		e.preview.Cursor = ev.Cell
		redraw = true
	}

	next, fx := e.machine.Step(ev, tool.Input{Color: e.color, Width: e.width, Height: e.height})
	e.machine = next
	if fx.PreviewChanged {
		e.preview.Cells = fx.Preview
		redraw = true
	}
	if fx.Commit != nil && e.doc.Commit(fx.Commit) {
		// the document change already requested a redraw
		redraw = false
	}
	if redraw {
		e.redraw()
	}
}

func (e *Editor) documentChanged(g *state.Grid, _ uint64) {
	if g.Width() != e.width || g.Height() != e.height {
		attached := e.bindings != nil
		e.Detach()
		e.width, e.height = g.Width(), g.Height()
		if attached {
			e.Attach()
		}
	}
	e.redraw()
}

func (e *Editor) redraw() {
	for _, fn := range e.onRedraw {
		fn()
	}
}
