package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PhotoMarkup/internal/state"
)

// ToolbarActions are the callbacks main.go wires to the collaborators
// (image source, persistence).
type ToolbarActions struct {
	OnOpen      func()
	OnExportPNG func()
	OnExportPDF func()
}

// adjustmentSlider builds one labelled slider. The slider min/max enforce
// the parameter's declared range, so the editor always receives clamped
// values.
func adjustmentSlider(name string, min, max, start float64, onChanged func(float64)) fyne.CanvasObject {
	valueLabel := widget.NewLabel(fmt.Sprintf("%.2f", start))
	slider := widget.NewSlider(min, max)
	slider.Step = 0.01
	slider.SetValue(start)
	slider.OnChanged = func(v float64) {
		valueLabel.SetText(fmt.Sprintf("%.2f", v))
		onChanged(v)
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), slider)
	return container.NewHBox(widget.NewLabel(name), sliderBox, valueLabel)
}

// NewToolbar assembles the adjustment sliders and the action buttons.
func NewToolbar(editor *state.Editor, actions ToolbarActions) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), actions.OnOpen),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), actions.OnExportPNG),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), actions.OnExportPDF),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			editor.ClearStrokes()
		}),
	)

	sliders := container.NewHBox(
		adjustmentSlider("Brightness:", -1, 1, 0, editor.SetBrightness),
		widget.NewSeparator(),
		adjustmentSlider("Contrast:", 0, 4, 1, editor.SetContrast),
		widget.NewSeparator(),
		adjustmentSlider("Saturation:", 0, 2, 1, editor.SetSaturation),
	)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		sliders,
		layout.NewSpacer(),
	)
}
