package ui

import (
	"fmt"
	"io"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"PixelBoard/internal/editor"
	"PixelBoard/internal/export"
	"PixelBoard/internal/logging"
)

// fileActions implements the download, PDF and project buttons. The
// dialogs only pick a location; the writing and reading happen in the
// write* and open* methods so they can run without a window.
type fileActions struct {
	editor *editor.Editor
	window fyne.Window
	name   *widget.Entry
	status *widget.Label
	scale  int
}

func newFileActions(ed *editor.Editor, win fyne.Window, baseName string, scale int) *fileActions {
	name := widget.NewEntry()
	name.SetText(baseName)
	name.SetPlaceHolder(export.DefaultBaseName)
	return &fileActions{
		editor: ed,
		window: win,
		name:   name,
		status: widget.NewLabel("Ready"),
		scale:  scale,
	}
}

func (f *fileActions) setStatus(text string) {
	f.status.SetText(text)
}

func (f *fileActions) fileName(ext string) string {
	return export.FileName(f.name.Text, ext)
}

// title is the sanitized base name without extension, used inside exported
// documents.
func (f *fileActions) title() string {
	return strings.TrimSuffix(f.fileName("png"), ".png")
}

func (f *fileActions) fail(op string, err error) {
	logging.Logger().Error(op+" failed", "component", "ui", "err", err)
	f.setStatus(fmt.Sprintf("%s failed: %v", op, err))
	if f.window != nil {
		dialog.ShowError(err, f.window)
	}
}

func (f *fileActions) showSave(name, ext string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			f.fail("save", err)
			return
		}
		if w == nil {
			return
		}
		f.writeTo(w, write)
	}, f.window)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{"." + ext}))
	d.Show()
}

func (f *fileActions) showSavePNG() {
	f.showSave(f.fileName("png"), "png", f.writePNG)
}

func (f *fileActions) showSavePDF() {
	f.showSave(f.fileName("pdf"), "pdf", f.writePDF)
}

func (f *fileActions) showSaveProject() {
	f.showSave(f.fileName("json"), "json", f.writeProject)
}

func (f *fileActions) showOpenProject() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			f.fail("open", err)
			return
		}
		if r == nil {
			return
		}
		f.openFrom(r)
	}, f.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (f *fileActions) writeTo(w fyne.URIWriteCloser, write func(io.Writer) error) {
	defer func() {
		if err := w.Close(); err != nil {
			logging.Logger().Warn("closing file", "component", "ui", "err", err)
		}
	}()
	if err := write(w); err != nil {
		f.fail("save", err)
		return
	}
	logging.Logger().Info("saved", "component", "ui", "uri", w.URI().String())
	f.setStatus("Saved " + w.URI().Name())
}

func (f *fileActions) openFrom(r fyne.URIReadCloser) {
	defer func() {
		if err := r.Close(); err != nil {
			logging.Logger().Warn("closing file", "component", "ui", "err", err)
		}
	}()
	if err := f.readProject(r); err != nil {
		f.fail("open", err)
		return
	}
	f.setStatus("Opened " + r.URI().Name())
}

func (f *fileActions) writePNG(w io.Writer) error {
	return export.WritePNG(w, f.editor.Document().Grid(), f.scale)
}

func (f *fileActions) writePDF(w io.Writer) error {
	return export.WritePDF(w, f.editor.Document().Grid(), f.title())
}

func (f *fileActions) writeProject(w io.Writer) error {
	return export.SaveProject(w, f.editor.Document())
}

// readProject replaces the picture with the project read from r. The
// history starts over.
func (f *fileActions) readProject(r io.Reader) error {
	p, g, err := export.LoadProject(r)
	if err != nil {
		return err
	}
	doc := f.editor.Document()
	doc.SetID(p.ID)
	doc.Replace(g)
	logging.Logger().Info("project opened", "component", "ui", "id", doc.ID(),
		"width", g.Width(), "height", g.Height())
	return nil
}
