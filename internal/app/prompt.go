package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// dialogPrompter asks for calibration values with a modal form dialog
type dialogPrompter struct {
	window fyne.Window
}

// Prompt shows the dialog and resolves when it is confirmed or dismissed
func (p *dialogPrompter) Prompt(message, defaultText string, resolve func(string, bool)) {
	entry := widget.NewEntry()
	entry.SetText(defaultText)

	d := dialog.NewForm("Calibrate interval", "OK", "Cancel",
		[]*widget.FormItem{widget.NewFormItem(message, entry)},
		func(ok bool) {
			resolve(entry.Text, ok)
		}, p.window)

	entry.OnSubmitted = func(string) {
		d.Submit()
	}

	d.Resize(fyne.NewSize(420, d.MinSize().Height))
	d.Show()
	p.window.Canvas().Focus(entry)
}
