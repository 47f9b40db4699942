package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"PhotoMarkup/internal/export"
	"PhotoMarkup/internal/state"
	"PhotoMarkup/internal/ui"
)

// exportDirs resolves the private export directory and the shared
// gallery directory, creating both if needed.
func exportDirs() (string, string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("resolving home directory: %w", err)
	}
	private := filepath.Join(home, ".photomarkup", "exports")
	gallery := filepath.Join(home, "Pictures", "PhotoMarkup")
	if err := os.MkdirAll(private, 0o755); err != nil {
		return "", "", fmt.Errorf("creating export dir: %w", err)
	}
	if err := os.MkdirAll(gallery, 0o755); err != nil {
		return "", "", fmt.Errorf("creating gallery dir: %w", err)
	}
	return private, gallery, nil
}

func main() {
	privateDir, galleryDir, err := exportDirs()
	if err != nil {
		log.Fatalf("Failed to prepare export directories: %v", err)
	}
	log.Printf("Exports go to %s, gallery copies to %s", privateDir, galleryDir)

	editor := state.NewEditor()
	surface := ui.NewEditorWidget(editor)

	ui.RunApp(editor, surface, func(win fyne.Window) ui.ToolbarActions {
		return ui.ToolbarActions{
			OnOpen:      func() { openImage(win, editor, surface) },
			OnExportPNG: func() { exportPNG(editor, surface, privateDir, galleryDir) },
			OnExportPDF: func() { exportPDF(editor, surface, privateDir) },
		}
	})
}

// openImage shows the file picker and loads the chosen image into the
// editor. Cancelling the picker is a no-op, not an error.
func openImage(win fyne.Window, editor *state.Editor, surface *ui.EditorWidget) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			surface.SetStatus(fmt.Sprintf("Could not open image: %v", err))
			return
		}
		if reader == nil {
			// User cancelled.
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("Error closing reader: %v", err)
			}
		}()

		img, format, err := image.Decode(reader)
		if err != nil {
			surface.SetStatus(fmt.Sprintf("Could not decode image: %v", err))
			return
		}

		editor.SetImage(img)
		b := img.Bounds()
		log.Printf("Loaded %s image %dx%d from %s", format, b.Dx(), b.Dy(), reader.URI())
		surface.SetStatus(fmt.Sprintf("Loaded %dx%d image", b.Dx(), b.Dy()))
	}, win)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif"}))
	fileDialog.Show()
}

// exportPNG flattens the current composite and hands it to the
// persistence collaborator. Runs off the event loop so a large export
// does not freeze the UI; the editor serializes concurrent requests.
func exportPNG(editor *state.Editor, surface *ui.EditorWidget, privateDir, galleryDir string) {
	go func() {
		img, err := editor.ExportComposite()
		if err != nil {
			surface.SetStatus(exportErrorMessage(err))
			return
		}
		path, err := export.SavePNG(img, privateDir, galleryDir)
		if err != nil {
			// A partial save still reports the surviving file path.
			surface.SetStatus(fmt.Sprintf("Export problem: %v", err))
			return
		}
		surface.SetStatus(fmt.Sprintf("Exported to %s", path))
	}()
}

func exportPDF(editor *state.Editor, surface *ui.EditorWidget, privateDir string) {
	go func() {
		img, err := editor.ExportComposite()
		if err != nil {
			surface.SetStatus(exportErrorMessage(err))
			return
		}
		path, err := export.SavePDF(img, privateDir)
		if err != nil {
			surface.SetStatus(fmt.Sprintf("PDF export failed: %v", err))
			return
		}
		surface.SetStatus(fmt.Sprintf("Exported PDF to %s", path))
	}()
}

func exportErrorMessage(err error) string {
	switch {
	case errors.Is(err, state.ErrNoImage):
		return "Nothing to export: load an image first"
	case errors.Is(err, state.ErrExportInProgress):
		return "Hold on, the previous export is still running"
	default:
		return fmt.Sprintf("Export failed: %v", err)
	}
}
