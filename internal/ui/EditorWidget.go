package ui

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"PhotoMarkup/internal/state"
)

// EditorWidget is the interactive compositing surface: it shows the base
// image with the current color matrix applied and lets the user draw pen
// strokes over it with the mouse. All pointer positions are used
// widget-local, which is also the editor's coordinate space because the
// image is displayed at its natural pixel size.
type EditorWidget struct {
	widget.BaseWidget
	editor    *state.Editor
	mu        sync.RWMutex
	drawing   bool
	filtered  image.Image
	statusBar *widget.Label
}

var _ fyne.Widget = (*EditorWidget)(nil)
var _ fyne.Draggable = (*EditorWidget)(nil)
var _ desktop.Mouseable = (*EditorWidget)(nil)

func NewEditorWidget(editor *state.Editor) *EditorWidget {
	w := &EditorWidget{
		editor:    editor,
		statusBar: widget.NewLabel("Load an image to start editing"),
	}
	w.ExtendBaseWidget(w)
	editor.OnChange = w.onEditorChange
	return w
}

// StatusBar exposes the label the app layout places below the surface.
func (w *EditorWidget) StatusBar() fyne.CanvasObject {
	return w.statusBar
}

func (w *EditorWidget) SetStatus(text string) {
	fyne.Do(func() {
		w.statusBar.SetText(text)
	})
}

// onEditorChange re-filters the base image and refreshes the display.
// Runs on every mutation, so the screen always reflects the latest state.
func (w *EditorWidget) onEditorChange() {
	filtered, err := w.editor.Filtered()
	w.mu.Lock()
	if err != nil {
		w.filtered = nil
	} else {
		w.filtered = filtered
	}
	w.mu.Unlock()
	w.Refresh()
}

func (w *EditorWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !w.editor.HasImage() {
		return
	}
	w.mu.Lock()
	w.drawing = true
	w.mu.Unlock()
	w.editor.AddStrokePoint(e.Position.X, e.Position.Y)
}

func (w *EditorWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.mu.Lock()
	wasDrawing := w.drawing
	w.drawing = false
	w.mu.Unlock()
	if wasDrawing {
		w.editor.EndStroke()
	}
}

func (w *EditorWidget) Dragged(e *fyne.DragEvent) {
	w.mu.RLock()
	drawing := w.drawing
	w.mu.RUnlock()
	if drawing {
		w.editor.AddStrokePoint(e.Position.X, e.Position.Y)
	}
}

func (w *EditorWidget) DragEnd() {
	// MouseUp delivers the pen-lift sentinel; nothing to do here.
}

func (w *EditorWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *EditorWidget) MouseOut()                      {}
func (w *EditorWidget) MouseMoved(*desktop.MouseEvent) {}

func (w *EditorWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &editorRenderer{surface: w}
	r.background = canvas.NewRectangle(color.NRGBA{R: 245, G: 246, B: 248, A: 255})
	return r
}

type editorRenderer struct {
	surface    *EditorWidget
	background *canvas.Rectangle
}

func (r *editorRenderer) Objects() []fyne.CanvasObject {
	r.surface.mu.RLock()
	filtered := r.surface.filtered
	r.surface.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}

	if filtered != nil {
		img := canvas.NewImageFromImage(filtered)
		img.FillMode = canvas.ImageFillOriginal
		b := filtered.Bounds()
		img.Resize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
		objects = append(objects, img)
	}

	strokeColor := state.StrokeColor
	for _, s := range r.surface.editor.Segments() {
		line := canvas.NewLine(strokeColor)
		line.StrokeWidth = state.StrokeWidth
		line.Position1 = fyne.NewPos(s.X1, s.Y1)
		line.Position2 = fyne.NewPos(s.X2, s.Y2)
		objects = append(objects, line)
	}
	return objects
}

func (r *editorRenderer) Refresh() {
	canvas.Refresh(r.surface)
}

func (r *editorRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *editorRenderer) MinSize() fyne.Size {
	r.surface.mu.RLock()
	filtered := r.surface.filtered
	r.surface.mu.RUnlock()
	if filtered != nil {
		b := filtered.Bounds()
		return fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
	}
	return fyne.NewSize(480, 360)
}

func (r *editorRenderer) Destroy() {}
