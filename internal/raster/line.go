// Package raster turns straight segments between grid cells into cell
// sequences.
package raster

import (
	"math"

	"PixelBoard/internal/state"
)

// Direction is the axis a segment advances along one cell at a time.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Classify returns the dominant direction of the segment from -> to.
// Angles within 45 degrees of the horizontal axis, boundaries included,
// are horizontal.
func Classify(from, to state.Cell) Direction {
	theta := math.Atan2(float64(to.Row-from.Row), float64(to.Col-from.Col))
	if math.Abs(theta) <= math.Pi/4 || math.Abs(theta) >= math.Pi*3/4 {
		return Horizontal
	}
	return Vertical
}

// DrawLine returns the cells approximating the segment from -> to on a
// width x height grid, each painted c. Both endpoints are included. The
// walk stops before the first cell that leaves the grid, so a far-away end
// yields the in-bounds prefix of the line. An out-of-bounds start yields nil.
func DrawLine(width, height int, from, to state.Cell, c state.Color) state.Patch {
	if !state.InBounds(from.Row, from.Col, width, height) {
		return nil
	}

	theta := math.Atan2(float64(to.Row-from.Row), float64(to.Col-from.Col))
	dir := Classify(from, to)

	var slope float64
	step := 1
	if dir == Horizontal {
		slope = math.Tan(theta)
		if math.Abs(theta) > math.Pi/4 {
			step = -1
		}
	} else {
		slope = math.Tan(theta + math.Pi/2)
		if theta <= 0 {
			step = -1
		}
	}

	line := state.Patch{}
	cur := from
	for i := 0; ; {
		line = append(line, state.Pixel{Row: cur.Row, Col: cur.Col, Color: c})
		if cur == to {
			break
		}

		i += step
		// rows and columns are measured from tile centres, hence the 0.5
		var next state.Cell
		if dir == Horizontal {
			next = state.Cell{
				Row: int(math.Floor(float64(from.Row) + 0.5 + float64(i)*slope)),
				Col: from.Col + i,
			}
		} else {
			next = state.Cell{
				Row: from.Row + i,
				Col: int(math.Floor(float64(from.Col) + 0.5 - float64(i)*slope)),
			}
		}
		if !state.InBounds(next.Row, next.Col, width, height) {
			break
		}
		cur = next
	}
	return line
}
