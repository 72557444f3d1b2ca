// Package export writes pictures out as PNG and PDF files and saves and
// loads editable projects.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"PixelBoard/internal/state"
)

// DefaultBaseName is used when the user leaves the file name empty.
const DefaultBaseName = "your-creation"

// MaxScale bounds the upscaling factor of exported images.
const MaxScale = 64

// WritePNG encodes g with one pixel per cell. A scale above 1 enlarges each
// cell to a scale x scale block without smoothing.
func WritePNG(w io.Writer, g *state.Grid, scale int) error {
	img := Scaled(g, scale)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Scaled returns g as an image, each cell a scale x scale block.
func Scaled(g *state.Grid, scale int) image.Image {
	src := g.Image()
	scale = min(max(scale, 1), MaxScale)
	if scale == 1 {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, g.Width()*scale, g.Height()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// FileName turns a user supplied base name into a safe file name with the
// given extension. Directory parts and a trailing copy of ext are dropped.
func FileName(base, ext string) string {
	base = strings.TrimSpace(filepath.Base(strings.ReplaceAll(base, "\\", "/")))
	base = strings.TrimSuffix(base, "."+ext)
	base = strings.Map(func(r rune) rune {
		switch {
		case r < ' ', strings.ContainsRune(`<>:"/\|?*`, r):
			return '-'
		}
		return r
	}, base)
	if base == "" || base == "." || base == ".." {
		base = DefaultBaseName
	}
	return base + "." + ext
}
