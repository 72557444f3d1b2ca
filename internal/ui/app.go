package ui

import (
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"PixelBoard/internal/config"
	"PixelBoard/internal/editor"
)

// NewWindow builds the editor window in a. shareLink, when not empty, is
// shown as a link to the live viewer.
func NewWindow(a fyne.App, cfg config.Config, ed *editor.Editor, shareLink string) (fyne.Window, *PixelCanvas) {
	win := a.NewWindow("PixelBoard")

	files := newFileActions(ed, win, cfg.FileName, cfg.ExportScale)
	board := NewPixelCanvas(ed, cfg.Stride)
	toolbar := newToolbar(ed, cfg.Palette, files)

	footer := []fyne.CanvasObject{files.status}
	if shareLink != "" {
		if u, err := url.Parse(shareLink); err == nil {
			footer = append(footer, widget.NewHyperlink("viewer: "+shareLink, u))
		}
	}

	content := container.NewBorder(toolbar, container.NewHBox(footer...), nil, nil, container.NewCenter(board))
	win.SetContent(content)
	board.Mount(win.Canvas())
	win.SetOnClosed(board.Unmount)
	win.Resize(fyne.NewSize(900, 820))
	return win, board
}

// RunApp opens the editor window and blocks until it is closed.
func RunApp(cfg config.Config, ed *editor.Editor, shareLink string) {
	myApp := app.New()
	myWindow, _ := NewWindow(myApp, cfg, ed, shareLink)
	myWindow.ShowAndRun()
}
