package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SavePNG encodes img as PNG and writes it under a fresh random filename
// into dir, then copies the same bytes into galleryDir (the shared
// "gallery" folder). It returns the path of the file written to dir.
//
// The two writes fail independently: if the private write fails nothing
// is kept; if only the gallery copy fails, the private file stays on disk
// and the error says so, so the caller can tell a partial save from a
// total one.
func SavePNG(img image.Image, dir, galleryDir string) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	name := uuid.New().String() + ".png"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	log.Printf("Exported composite to %s (%d bytes)", path, buf.Len())

	galleryPath := filepath.Join(galleryDir, name)
	if err := os.WriteFile(galleryPath, buf.Bytes(), 0o644); err != nil {
		return path, fmt.Errorf("saved to %s but gallery copy failed: %w", path, err)
	}
	log.Printf("Copied export into gallery at %s", galleryPath)
	return path, nil
}
