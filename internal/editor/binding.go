package editor

import (
	"PixelBoard/internal/logging"
	"PixelBoard/internal/state"
	"PixelBoard/internal/tool"
)

// binding is the set of pointer handlers installed for one tool on a grid
// of one size. At most one is live per editor; releasing it drops any
// in-progress line so nothing dangles into the next configuration.
type binding struct {
	editor   *Editor
	kind     tool.Kind
	width    int
	height   int
	released bool
}

func (b *binding) handle(t tool.EventType, c state.Cell) {
	if b.released {
		return
	}
	b.editor.step(tool.Event{Type: t, Cell: c})
}

func (b *binding) release() {
	b.released = true
}

// Attach installs the pointer handlers for the current tool and grid size.
// Attaching twice is a no-op.
func (e *Editor) Attach() {
	if e.bindings != nil {
		return
	}
	e.bindings = &binding{editor: e, kind: e.machine.Kind, width: e.width, height: e.height}
	logging.Logger().Debug("handlers attached", "component", "editor",
		"tool", e.machine.Kind.String(), "width", e.width, "height", e.height)
}

// Detach removes the pointer handlers and clears any preview. Pointer
// events are ignored until the next Attach.
func (e *Editor) Detach() {
	if e.bindings == nil {
		return
	}
	e.bindings.release()
	e.bindings = nil

	var fx tool.Effects
	e.machine, fx = e.machine.Switch(e.machine.Kind)
	if fx.PreviewChanged || e.preview.Cells != nil {
		e.preview.Cells = nil
		e.redraw()
	}
	logging.Logger().Debug("handlers detached", "component", "editor")
}

// Attached reports whether pointer handlers are installed.
func (e *Editor) Attached() bool { return e.bindings != nil }

// Binding describes the installed handlers: the tool and grid size they
// were attached for. ok is false when nothing is attached.
func (e *Editor) Binding() (kind tool.Kind, width, height int, ok bool) {
	if e.bindings == nil {
		return 0, 0, 0, false
	}
	return e.bindings.kind, e.bindings.width, e.bindings.height, true
}
