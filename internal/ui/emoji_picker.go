package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-journal/internal/config"
)

// showEmojiPicker opens the glyph grid for one entry. Ignored while a
// previous mutation is still in flight: emoji updates run one at a time.
func (app *JournalApp) showEmojiPicker(win fyne.Window, entryID string) {
	if app.updating.Load() {
		return
	}

	grid := container.NewGridWithColumns(config.PickerColumns)
	for _, glyph := range config.DefaultEmojiPalette {
		glyph := glyph
		grid.Add(widget.NewButton(glyph, func() {
			if app.updating.Load() {
				return
			}
			go func() {
				if err := app.applyEmoji(entryID, glyph); err != nil {
					msg := deriveMessage(err, config.FallbackErrUpdate)
					fyne.Do(func() {
						dialog.ShowError(errors.New(app.GetMsg(config.TKeyDlgUpdateFail)+": "+msg), win)
					})
				}
			}()
		}))
	}

	picker := dialog.NewCustom(
		app.GetMsg(config.TKeyPickerTitle),
		app.GetMsg(config.TKeyBtnCancel),
		grid,
		win,
	)

	app.pickerMut.Lock()
	app.picker = picker
	app.pickerMut.Unlock()

	picker.SetOnClosed(func() {
		app.pickerMut.Lock()
		if app.picker == picker {
			app.picker = nil
		}
		app.pickerMut.Unlock()
	})

	picker.Show()
}

// closeEmojiPicker dismisses the open picker, if any, and releases the
// updating flag. Called at the end of every mutation, success or failure.
// The flag stays set until the picker is gone from the screen.
func (app *JournalApp) closeEmojiPicker() {
	app.pickerMut.Lock()
	picker := app.picker
	app.picker = nil
	app.pickerMut.Unlock()

	if picker == nil {
		app.updating.Store(false)
		return
	}

	fyne.Do(func() {
		picker.Hide()
		app.updating.Store(false)
	})
}
