package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"PixelBoard/internal/state"
)

const (
	pageWidth  = 210.0 // A4, mm
	pageMargin = 20.0
)

// WritePDF prints g on one A4 page, one filled square per cell, with title
// above it.
func WritePDF(w io.Writer, g *state.Grid, title string) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle(title, true)
	p.SetCreator("PixelBoard", true)
	p.AddPage()

	p.SetFont("Helvetica", "B", 14)
	p.Text(pageMargin, pageMargin-6, title)

	side := (pageWidth - 2*pageMargin) / float64(max(g.Width(), g.Height()))
	p.SetDrawColor(200, 200, 200)
	p.SetLineWidth(0.2)
	p.Rect(pageMargin, pageMargin, side*float64(g.Width()), side*float64(g.Height()), "D")

	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			col, _ := g.At(r, c)
			red, green, blue, alpha := col.Unpack()
			if alpha == 0 {
				continue
			}
			p.SetAlpha(float64(alpha)/255, "Normal")
			p.SetFillColor(int(red), int(green), int(blue))
			p.Rect(pageMargin+float64(c)*side, pageMargin+float64(r)*side, side, side, "F")
		}
	}
	p.SetAlpha(1, "Normal")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
