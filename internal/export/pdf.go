package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// SavePDF embeds the flattened composite into a single-page A4 PDF,
// scaled to fit the page margins, and writes it under a fresh random
// filename into dir. Returns the written path.
func SavePDF(img image.Image, dir string) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding PNG for PDF: %w", err)
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("composite", opts, &buf)

	// Fit the image inside the printable area, preserving aspect.
	pageW, pageH := p.GetPageSize()
	left, top, right, bottom := p.GetMargins()
	availW := pageW - left - right
	availH := pageH - top - bottom

	b := img.Bounds()
	w := availW
	h := w * float64(b.Dy()) / float64(b.Dx())
	if h > availH {
		h = availH
		w = h * float64(b.Dx()) / float64(b.Dy())
	}
	p.ImageOptions("composite", left, top, w, h, false, opts, 0, "")

	path := filepath.Join(dir, uuid.New().String()+".pdf")
	if err := p.OutputFileAndClose(path); err != nil {
		// OutputFileAndClose may leave a partial file behind.
		os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
