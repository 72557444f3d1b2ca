package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PixelBoard/internal/editor"
	"PixelBoard/internal/state"
	"PixelBoard/internal/tool"
)

// --- Colour swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    state.Color
	OnTapped func(state.Color)
	border   *canvas.Rectangle
}

func newColorSwatch(c state.Color, tapped func(state.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.border = canvas.NewRectangle(color.Transparent)
	s.border.StrokeColor = color.Gray{Y: 150}
	s.border.StrokeWidth = 1
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color.NRGBA())
	rect.SetMinSize(fyne.NewSize(32, 32))
	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func (s *colorSwatch) setSelected(on bool) {
	if on {
		s.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeColor = color.Gray{Y: 150}
		s.border.StrokeWidth = 1
	}
	s.border.Refresh()
}

// palette is the row of swatches. The highlighted swatch is the one last
// tapped, so equal colours in the palette stay distinguishable.
type palette struct {
	editor   *editor.Editor
	swatches []*colorSwatch
	selected int
}

func newPalette(ed *editor.Editor, colors []state.Color) *palette {
	p := &palette{editor: ed, selected: -1}
	for i, c := range colors {
		p.swatches = append(p.swatches, newColorSwatch(c, func(state.Color) { p.pick(i) }))
		if p.selected < 0 && c == ed.Color() {
			p.selected = i
		}
	}
	p.highlight()
	return p
}

func (p *palette) pick(i int) {
	p.selected = i
	p.editor.SetColor(p.swatches[i].Color)
	p.highlight()
}

func (p *palette) highlight() {
	for i, s := range p.swatches {
		s.setSelected(i == p.selected)
	}
}

func (p *palette) objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, len(p.swatches))
	for i, s := range p.swatches {
		objs[i] = s
	}
	return objs
}

// newHistoryActions returns the undo and redo buttons. They are disabled
// while there is nothing to undo or redo.
func newHistoryActions(ed *editor.Editor) (undo, redo *widget.ToolbarAction) {
	undo = widget.NewToolbarAction(theme.ContentUndoIcon(), func() { ed.Undo() })
	redo = widget.NewToolbarAction(theme.ContentRedoIcon(), func() { ed.Redo() })
	refresh := func() {
		h := ed.Document().History()
		setEnabled(undo, h.CanUndo())
		setEnabled(redo, h.CanRedo())
	}
	ed.OnRedraw(refresh)
	refresh()
	return undo, redo
}

func setEnabled(a *widget.ToolbarAction, on bool) {
	if on {
		a.Enable()
	} else {
		a.Disable()
	}
}

// --- The main toolbar ---
func newToolbar(ed *editor.Editor, colors []state.Color, files *fileActions) fyne.CanvasObject {
	toolLabel := widget.NewLabel(ed.Tool().String())
	selectTool := func(k tool.Kind) {
		ed.SetTool(k)
		toolLabel.SetText(k.String())
		files.setStatus(k.String() + " selected")
	}

	undo, redo := newHistoryActions(ed)
	tb := widget.NewToolbar(
		undo,
		redo,
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { selectTool(tool.Brush) }), // Brush
		widget.NewToolbarAction(theme.MoreHorizontalIcon(), func() { selectTool(tool.Line) }),  // Line
	)

	colorBox := container.NewHBox(newPalette(ed, colors).objects()...)

	download := widget.NewButtonWithIcon("Download", theme.DownloadIcon(), files.showSavePNG)
	pdf := widget.NewButtonWithIcon("PDF", theme.DocumentPrintIcon(), files.showSavePDF)
	save := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), files.showSaveProject)
	open := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), files.showOpenProject)

	nameBox := container.NewBorder(nil, nil, nil, widget.NewLabel(".png"), files.name)

	return container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Tool:"),
			tb,
			toolLabel,
			widget.NewSeparator(),
			widget.NewLabel("Color:"),
			colorBox,
		),
		container.NewBorder(nil, nil, widget.NewLabel("File:"),
			container.NewHBox(download, pdf, save, open), nameBox),
	)
}
