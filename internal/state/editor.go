package state

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"PhotoMarkup/internal/render"
)

// ExportScale is the fixed supersampling multiplier for exports: the
// flattened bitmap is 3x the source image in each dimension so output
// quality does not depend on the screen the image was edited on.
const ExportScale = 3.0

// StrokeWidth is the pen width in local units. The render layer scales
// it with the export multiplier so exported strokes keep their on-screen
// proportions.
const StrokeWidth = 4.0

// StrokeColor is the fixed pen color.
var StrokeColor = color.NRGBA{R: 220, G: 40, B: 40, A: 255}

var (
	ErrNoImage          = errors.New("no image loaded")
	ErrEmptyImage       = errors.New("image has no pixels to render")
	ErrExportInProgress = errors.New("an export is already in progress")
)

// Editor owns the whole editing session: the base image, the current
// color adjustment and the stroke log. Nothing else mutates these. The
// UI reads through the accessors and pushes mutations through the
// methods below, all of which arrive from the single Fyne event loop;
// the mutex additionally covers background export goroutines.
type Editor struct {
	mu         sync.RWMutex
	img        image.Image
	adjustment render.Adjustment
	strokes    StrokeLog
	exporting  bool

	// OnChange fires after every mutation so the display layer can
	// re-render. May be nil.
	OnChange func()
}

func NewEditor() *Editor {
	return &Editor{adjustment: render.DefaultAdjustment()}
}

// SetImage loads a new base image and resets the session: the adjustment
// goes back to identity and the stroke log is emptied, even when the
// previous session had edits.
func (e *Editor) SetImage(img image.Image) {
	e.mu.Lock()
	e.img = img
	e.adjustment = render.DefaultAdjustment()
	e.strokes = StrokeLog{}
	e.mu.Unlock()
	e.changed()
}

// HasImage reports whether a base image is loaded.
func (e *Editor) HasImage() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.img != nil
}

// Image returns the current base image, or nil before the first load.
func (e *Editor) Image() image.Image {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.img
}

// Adjustment returns the current slider parameters.
func (e *Editor) Adjustment() render.Adjustment {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.adjustment
}

// SetBrightness replaces the brightness parameter. The slider layer
// delivers values already clamped to [-1,1].
func (e *Editor) SetBrightness(v float64) {
	e.mu.Lock()
	e.adjustment.Brightness = v
	e.mu.Unlock()
	e.changed()
}

// SetContrast replaces the contrast parameter, already clamped to [0,4].
func (e *Editor) SetContrast(v float64) {
	e.mu.Lock()
	e.adjustment.Contrast = v
	e.mu.Unlock()
	e.changed()
}

// SetSaturation replaces the saturation parameter, already clamped to [0,2].
func (e *Editor) SetSaturation(v float64) {
	e.mu.Lock()
	e.adjustment.Saturation = v
	e.mu.Unlock()
	e.changed()
}

// AddStrokePoint appends one sampled pointer position, in the surface's
// local coordinate space. Drawing without an image is a no-op.
func (e *Editor) AddStrokePoint(x, y float32) {
	e.mu.Lock()
	if e.img == nil {
		e.mu.Unlock()
		return
	}
	e.strokes.Append(x, y)
	e.mu.Unlock()
	e.changed()
}

// EndStroke records the pen lifting. One sentinel per pointer-up.
func (e *Editor) EndStroke() {
	e.mu.Lock()
	if e.img == nil {
		e.mu.Unlock()
		return
	}
	e.strokes.EndStroke()
	e.mu.Unlock()
	e.changed()
}

// ClearStrokes drops every stroke but keeps the image and adjustment.
func (e *Editor) ClearStrokes() {
	e.mu.Lock()
	e.strokes = StrokeLog{}
	e.mu.Unlock()
	e.changed()
}

// Segments returns the currently drawable stroke segments.
func (e *Editor) Segments() []render.Segment {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.strokes.Segments()
}

// Filtered returns the base image with the current color matrix applied,
// at source resolution. Used for the live display.
func (e *Editor) Filtered() (*image.NRGBA, error) {
	e.mu.RLock()
	img := e.img
	adj := e.adjustment
	e.mu.RUnlock()
	if img == nil {
		return nil, ErrNoImage
	}
	return render.Filter(img, render.Compose(adj)), nil
}

// Composite flattens image, color matrix and strokes into one bitmap at
// the given scale. Fails cleanly when no image is loaded or the image is
// zero-sized; editor state is never touched.
func (e *Editor) Composite(scale float64) (*image.NRGBA, error) {
	e.mu.RLock()
	img := e.img
	adj := e.adjustment
	segs := e.strokes.Segments()
	e.mu.RUnlock()

	if img == nil {
		return nil, ErrNoImage
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	m := render.Compose(adj)
	return render.Flatten(img, m, segs, StrokeWidth, StrokeColor, scale), nil
}

// ExportComposite produces the flattened bitmap at the fixed export
// multiplier. Only one export may run at a time; a second request while
// one is outstanding is rejected rather than raced.
func (e *Editor) ExportComposite() (*image.NRGBA, error) {
	e.mu.Lock()
	if e.exporting {
		e.mu.Unlock()
		return nil, ErrExportInProgress
	}
	e.exporting = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.exporting = false
		e.mu.Unlock()
	}()

	return e.Composite(ExportScale)
}

func (e *Editor) changed() {
	if e.OnChange != nil {
		e.OnChange()
	}
}
