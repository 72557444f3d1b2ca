package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"PixelBoard/internal/editor"
	"PixelBoard/internal/logging"
	"PixelBoard/internal/render"
)

// PixelCanvas shows the picture of an editor and turns mouse input into
// editor pointer events. One surface unit is one pixel of the painted
// frame, so cell (r, c) covers [c*stride, (c+1)*stride) horizontally.
type PixelCanvas struct {
	widget.BaseWidget
	editor   *editor.Editor
	stride   int
	mu       sync.Mutex
	pipeline *render.Pipeline
	raster   *canvas.Raster
	last     fyne.Position
	mounted  fyne.Canvas
	keys     []shortcut
}

type shortcut struct {
	key fyne.Shortcut
	run func()
}

var _ fyne.Widget = (*PixelCanvas)(nil)
var _ fyne.Draggable = (*PixelCanvas)(nil)
var _ desktop.Mouseable = (*PixelCanvas)(nil)
var _ desktop.Hoverable = (*PixelCanvas)(nil)

// NewPixelCanvas creates the canvas for ed with cells of stride pixels.
func NewPixelCanvas(ed *editor.Editor, stride int) *PixelCanvas {
	g := ed.Document().Grid()
	p := &PixelCanvas{
		editor:   ed,
		stride:   stride,
		pipeline: render.NewPipeline(g.Width(), g.Height(), stride),
	}
	p.raster = canvas.NewRaster(func(_, _ int) image.Image { return p.Frame() })
	p.raster.ScaleMode = canvas.ImageScalePixels
	p.raster.SetMinSize(p.frameSize())
	p.keys = []shortcut{
		{&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func() { ed.Undo() }},
		{&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}, func() { ed.Redo() }},
		{&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierControl}, func() { ed.Redo() }},
	}
	p.ExtendBaseWidget(p)
	ed.OnRedraw(p.redraw)
	p.redraw()
	return p
}

// Frame returns the current painted frame.
func (p *PixelCanvas) Frame() image.Image {
	p.mu.Lock()
	pl := p.pipeline
	p.mu.Unlock()
	return pl.Frame()
}

// Mount attaches the pointer handlers and registers the undo and redo
// shortcuts on c. Mounting again on the same canvas does nothing; mounting
// on another canvas moves the shortcuts there.
func (p *PixelCanvas) Mount(c fyne.Canvas) {
	if p.mounted == c {
		return
	}
	p.Unmount()
	for _, s := range p.keys {
		run := s.run
		c.AddShortcut(s.key, func(fyne.Shortcut) { run() })
	}
	p.mounted = c
	p.editor.Attach()
	logging.Logger().Debug("canvas mounted", "component", "ui", "shortcuts", len(p.keys))
}

// Unmount removes everything Mount registered.
func (p *PixelCanvas) Unmount() {
	if p.mounted == nil {
		return
	}
	for _, s := range p.keys {
		p.mounted.RemoveShortcut(s.key)
	}
	p.mounted = nil
	p.editor.Detach()
	logging.Logger().Debug("canvas unmounted", "component", "ui")
}

// Mounted reports whether the canvas is mounted.
func (p *PixelCanvas) Mounted() bool { return p.mounted != nil }

func (p *PixelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

func (p *PixelCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.last = e.Position
	p.editor.PointerDown(e.Position.X, e.Position.Y)
}

func (p *PixelCanvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.last = e.Position
	p.editor.PointerUp(e.Position.X, e.Position.Y)
}

func (p *PixelCanvas) MouseIn(e *desktop.MouseEvent) {
	p.MouseMoved(e)
}

func (p *PixelCanvas) MouseMoved(e *desktop.MouseEvent) {
	p.last = e.Position
	p.editor.PointerMove(e.Position.X, e.Position.Y)
}

func (p *PixelCanvas) MouseOut() {}

func (p *PixelCanvas) Dragged(e *fyne.DragEvent) {
	p.last = e.Position
	p.editor.PointerMove(e.Position.X, e.Position.Y)
}

// DragEnd releases the button where the drag stopped. The driver may also
// deliver MouseUp; a second release is harmless.
func (p *PixelCanvas) DragEnd() {
	p.editor.PointerUp(p.last.X, p.last.Y)
}

func (p *PixelCanvas) frameSize() fyne.Size {
	g := p.editor.Document().Grid()
	return fyne.NewSize(float32(g.Width()*p.stride), float32(g.Height()*p.stride))
}

func (p *PixelCanvas) redraw() {
	g := p.editor.Document().Grid()
	p.mu.Lock()
	size := p.pipeline.Size()
	resized := size.X != g.Width()*p.stride || size.Y != g.Height()*p.stride
	if resized {
		p.pipeline = render.NewPipeline(g.Width(), g.Height(), p.stride)
	}
	p.pipeline.Update(g, p.editor.Preview())
	p.mu.Unlock()

	if resized {
		p.raster.SetMinSize(p.frameSize())
		p.Refresh()
	}
	p.raster.Refresh()
}
