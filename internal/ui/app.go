package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"PhotoMarkup/internal/state"
)

// RunApp builds the single editing window and blocks until it closes.
// wire is called once the window exists so main.go can attach the file
// dialogs and export actions to it.
func RunApp(editor *state.Editor, surface *EditorWidget, wire func(fyne.Window) ToolbarActions) {
	myApp := app.New()
	myWindow := myApp.NewWindow("PhotoMarkup")
	myWindow.Resize(fyne.NewSize(1024, 768))

	toolbar := NewToolbar(editor, wire(myWindow))
	scroll := container.NewScroll(surface)
	content := container.NewBorder(toolbar, surface.StatusBar(), nil, nil, scroll)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
