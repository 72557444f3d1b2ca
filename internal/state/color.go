package state

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a packed RRGGBBAA value.
type Color uint32

// Transparent is the zero colour.
const Transparent Color = 0x00000000

// Black is opaque black, used for the cursor outline outside the grid.
const Black Color = 0x000000ff

// Pack assembles a colour from 8-bit channels.
func Pack(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Unpack splits c into its 8-bit channels.
func (c Color) Unpack() (r, g, b, a uint8) {
	return uint8(c >> 24 & 0xff), uint8(c >> 16 & 0xff), uint8(c >> 8 & 0xff), uint8(c & 0xff)
}

// Invert returns an opaque outline colour that stands out against c:
// each RGB channel is inverted and then weighted toward black by c's alpha.
func (c Color) Invert() Color {
	r, g, b, a := c.Unpack()
	weigh := func(ch uint8) uint8 {
		v := uint32(0xff-ch) * uint32(a)
		// round(v / 255) without floating point
		return uint8((v + 127) / 0xff)
	}
	return Pack(weigh(r), weigh(g), weigh(b), 0xff)
}

// String formats c as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// NRGBA converts c to the standard library's non-premultiplied colour.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.Unpack()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts any color.Color to a packed Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pack(n.R, n.G, n.B, n.A)
}

// ParseColor reads RRGGBBAA or RRGGBB (opaque) hex, with an optional
// "#" or "0x" prefix.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("parse colour %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return Color(v), nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
