// Package tool implements the per-tool pointer state machines.
//
// A Machine is a value: Step consumes one pointer event and returns the
// next machine together with the side effects the editor must carry out.
// Nothing here touches the grid directly.
package tool

import (
	"fmt"

	"PixelBoard/internal/raster"
	"PixelBoard/internal/state"
)

// Kind selects a tool.
type Kind int

const (
	Brush Kind = iota
	Line
)

func (k Kind) String() string {
	switch k {
	case Brush:
		return "brush"
	case Line:
		return "line"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "brush":
		return Brush, nil
	case "line":
		return Line, nil
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// EventType is the kind of pointer event.
type EventType int

const (
	Down EventType = iota
	Move
	Up
)

// Event is a pointer event already mapped to a grid cell.
type Event struct {
	Type EventType
	Cell state.Cell
}

// Input is read at the moment of each event and never retained.
type Input struct {
	Color  state.Color
	Width  int
	Height int
}

func (in Input) inBounds(c state.Cell) bool {
	return state.InBounds(c.Row, c.Col, in.Width, in.Height)
}

// Effects describes what the editor must do after a step.
type Effects struct {
	// Commit, when non-nil, is a patch to apply to the document.
	Commit state.Patch
	// PreviewChanged reports that Preview replaces the current overlay.
	PreviewChanged bool
	Preview        state.Patch
}

// Machine is the state of the active tool.
type Machine struct {
	Kind Kind
	// Down reports whether the primary button is held.
	Down bool
	// Anchor is the fixed end of an in-progress line.
	Anchor *state.Cell
	// Preview is the last computed preview, committed by the line tool.
	Preview state.Patch
}

// New returns an idle machine for k.
func New(k Kind) Machine {
	return Machine{Kind: k}
}

// Anchored reports whether a line is in progress.
func (m Machine) Anchored() bool { return m.Anchor != nil }

// Switch discards any in-progress work and returns an idle machine for k.
// The held-button flag survives so a drag that continues after the switch
// still paints.
func (m Machine) Switch(k Kind) (Machine, Effects) {
	var fx Effects
	if m.Preview != nil {
		fx.PreviewChanged = true
	}
	return Machine{Kind: k, Down: m.Down}, fx
}

// Step advances the machine by one event.
func (m Machine) Step(ev Event, in Input) (Machine, Effects) {
	switch m.Kind {
	case Brush:
		return m.stepBrush(ev, in)
	case Line:
		return m.stepLine(ev, in)
	}
	return m, Effects{}
}

func (m Machine) stepBrush(ev Event, in Input) (Machine, Effects) {
	var fx Effects
	switch ev.Type {
	case Down:
		m.Down = true
		fx.Commit = m.place(ev.Cell, in)
	case Move:
		if m.Down {
			fx.Commit = m.place(ev.Cell, in)
		}
	case Up:
		m.Down = false
	}
	return m, fx
}

func (m Machine) place(c state.Cell, in Input) state.Patch {
	if !in.inBounds(c) {
		return nil
	}
	return state.Patch{{Row: c.Row, Col: c.Col, Color: in.Color}}
}

func (m Machine) stepLine(ev Event, in Input) (Machine, Effects) {
	var fx Effects
	switch ev.Type {
	case Down:
		m.Down = true
		if m.Anchor == nil {
			if !in.inBounds(ev.Cell) {
				return m, fx
			}
			anchor := ev.Cell
			m.Anchor = &anchor
			m.Preview = raster.DrawLine(in.Width, in.Height, anchor, ev.Cell, in.Color)
			fx.PreviewChanged, fx.Preview = true, m.Preview
			return m, fx
		}
		// second press: the end follows the press position, then commit
		line := raster.DrawLine(in.Width, in.Height, *m.Anchor, ev.Cell, in.Color)
		m.Anchor, m.Preview = nil, nil
		fx.Commit = line
		fx.PreviewChanged = true
	case Move:
		if m.Anchor != nil {
			m.Preview = raster.DrawLine(in.Width, in.Height, *m.Anchor, ev.Cell, in.Color)
			fx.PreviewChanged, fx.Preview = true, m.Preview
		}
	case Up:
		m.Down = false
	}
	return m, fx
}
