// Package render paints the committed grid and the preview overlay.
package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"PixelBoard/internal/state"
)

// Surface is what the painter draws on. Cells are squares of Stride units.
type Surface interface {
	Stride() int
	Bounds() image.Rectangle
	Clear()
	FillRect(r image.Rectangle, c state.Color)
	FillCell(row, col int, c state.Color)
	StrokeCell(row, col int, c state.Color, width int)
}

// ImageSurface is a Surface backed by an in-memory image. Fills are
// composited over what is already there.
type ImageSurface struct {
	img    *image.NRGBA
	stride int
}

// NewImageSurface allocates a surface for a width x height grid.
func NewImageSurface(width, height, stride int) *ImageSurface {
	if stride < 1 {
		stride = 1
	}
	return &ImageSurface{
		img:    image.NewNRGBA(image.Rect(0, 0, width*stride, height*stride)),
		stride: stride,
	}
}

// Image returns the backing image.
func (s *ImageSurface) Image() *image.NRGBA { return s.img }

func (s *ImageSurface) Stride() int             { return s.stride }
func (s *ImageSurface) Bounds() image.Rectangle { return s.img.Bounds() }

func (s *ImageSurface) Clear() {
	xdraw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
}

func (s *ImageSurface) FillRect(r image.Rectangle, c state.Color) {
	xdraw.Draw(s.img, r.Intersect(s.img.Bounds()), image.NewUniform(c.NRGBA()), image.Point{}, xdraw.Over)
}

func (s *ImageSurface) FillCell(row, col int, c state.Color) {
	s.FillRect(s.cellRect(row, col), c)
}

// StrokeCell outlines the cell with a border width units thick, drawn
// inside the cell.
func (s *ImageSurface) StrokeCell(row, col int, c state.Color, width int) {
	r := s.cellRect(row, col)
	if width*2 >= s.stride {
		s.FillRect(r, c)
		return
	}
	src := image.NewUniform(c.NRGBA())
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+width, r.Min.X+width, r.Max.Y-width),
		image.Rect(r.Max.X-width, r.Min.Y+width, r.Max.X, r.Max.Y-width),
	} {
		xdraw.Draw(s.img, edge.Intersect(s.img.Bounds()), src, image.Point{}, xdraw.Src)
	}
}

func (s *ImageSurface) cellRect(row, col int) image.Rectangle {
	x, y := col*s.stride, row*s.stride
	return image.Rect(x, y, x+s.stride, y+s.stride)
}

// At returns the colour of one surface pixel.
func (s *ImageSurface) At(x, y int) color.NRGBA {
	return s.img.NRGBAAt(x, y)
}
