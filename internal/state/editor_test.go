package state

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"PhotoMarkup/internal/render"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 13), G: uint8(y * 7), B: 128, A: 255})
		}
	}
	return img
}

func TestSetImageResetsSession(t *testing.T) {
	e := NewEditor()
	e.SetImage(testImage(10, 10))
	e.SetBrightness(0.7)
	e.SetContrast(3)
	e.SetSaturation(0.1)
	e.AddStrokePoint(1, 1)
	e.AddStrokePoint(2, 2)
	e.EndStroke()

	if len(e.Segments()) == 0 {
		t.Fatal("precondition: expected drawn segments")
	}

	e.SetImage(testImage(4, 4))

	if adj := e.Adjustment(); !adj.IsDefault() {
		t.Errorf("adjustment not reset on load: %+v", adj)
	}
	if segs := e.Segments(); len(segs) != 0 {
		t.Errorf("strokes not reset on load: %v", segs)
	}
}

func TestStrokesWithoutImageAreNoOps(t *testing.T) {
	e := NewEditor()
	e.AddStrokePoint(1, 1)
	e.EndStroke()
	if len(e.Segments()) != 0 {
		t.Fatal("drawing without an image recorded strokes")
	}
}

func TestExportWithoutImageFails(t *testing.T) {
	e := NewEditor()
	if _, err := e.ExportComposite(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("got %v, want ErrNoImage", err)
	}
}

func TestExportEmptyImageFails(t *testing.T) {
	e := NewEditor()
	e.SetImage(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if _, err := e.ExportComposite(); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("got %v, want ErrEmptyImage", err)
	}
}

func TestFailedExportLeavesStateIntact(t *testing.T) {
	e := NewEditor()
	if _, err := e.ExportComposite(); err == nil {
		t.Fatal("expected failure")
	}
	// The editor is still usable afterwards.
	e.SetImage(testImage(6, 6))
	if _, err := e.ExportComposite(); err != nil {
		t.Fatalf("editor unusable after failed export: %v", err)
	}
}

func TestExportRejectsSecondRequestInFlight(t *testing.T) {
	e := NewEditor()
	e.SetImage(testImage(6, 6))

	// Hold one export in flight.
	e.mu.Lock()
	e.exporting = true
	e.mu.Unlock()

	if _, err := e.ExportComposite(); !errors.Is(err, ErrExportInProgress) {
		t.Fatalf("got %v, want ErrExportInProgress", err)
	}

	// Once the outstanding export finishes the next one goes through.
	e.mu.Lock()
	e.exporting = false
	e.mu.Unlock()

	if _, err := e.ExportComposite(); err != nil {
		t.Fatalf("export still blocked after the first one finished: %v", err)
	}
	// That export cleared its own flag on the way out.
	if _, err := e.ExportComposite(); err != nil {
		t.Fatalf("in-flight flag not released after a successful export: %v", err)
	}
}

func TestExportFlagReleasedAfterFailure(t *testing.T) {
	e := NewEditor()
	e.SetImage(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if _, err := e.ExportComposite(); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("got %v, want ErrEmptyImage", err)
	}
	// A failed export must not leave the serialization flag stuck.
	e.SetImage(testImage(4, 4))
	if _, err := e.ExportComposite(); err != nil {
		t.Fatalf("in-flight flag stuck after failed export: %v", err)
	}
}

func TestEndToEndExport(t *testing.T) {
	e := NewEditor()
	e.SetImage(testImage(20, 10))
	e.SetBrightness(0.2)
	e.SetContrast(1.2)
	e.SetSaturation(0.8)
	e.AddStrokePoint(2, 5)
	e.AddStrokePoint(18, 5)
	e.EndStroke()

	out, err := e.ExportComposite()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if out.Bounds().Dx() != 60 || out.Bounds().Dy() != 30 {
		t.Fatalf("export dimensions %v, want 60x30 (source x3)", out.Bounds())
	}

	// The stroke made it into the flattened bitmap.
	if got := out.NRGBAAt(30, 15); got != StrokeColor {
		t.Errorf("stroke missing from export at (30,15): %v", got)
	}
}

func TestCompositeAppliesAdjustment(t *testing.T) {
	e := NewEditor()
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	e.SetImage(src)
	e.SetBrightness(-1) // everything to black

	out, err := e.Composite(1)
	if err != nil {
		t.Fatalf("composite failed: %v", err)
	}
	got := out.NRGBAAt(0, 0)
	if got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("brightness -1 did not darken to black: %v", got)
	}
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	e := NewEditor()
	calls := 0
	e.OnChange = func() { calls++ }

	e.SetImage(testImage(3, 3))
	e.SetBrightness(0.1)
	e.AddStrokePoint(1, 1)
	e.EndStroke()
	e.ClearStrokes()

	if calls != 5 {
		t.Fatalf("OnChange fired %d times, want 5", calls)
	}
}

func TestFilteredMatchesRenderFilter(t *testing.T) {
	e := NewEditor()
	img := testImage(5, 5)
	e.SetImage(img)
	e.SetSaturation(0)

	got, err := e.Filtered()
	if err != nil {
		t.Fatalf("Filtered failed: %v", err)
	}
	want := render.Filter(img, render.Compose(render.Adjustment{Contrast: 1}))
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", got.Bounds(), want.Bounds())
	}
	for i := range got.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel byte %d differs: %d vs %d", i, got.Pix[i], want.Pix[i])
		}
	}
}
