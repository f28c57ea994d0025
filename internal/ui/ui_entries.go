package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-journal/internal/config"
	"github.com/tartampluch/go-journal/internal/engine"
)

// ShowEntriesWindow opens (or focuses) the journal entries window.
// The window is a singleton: state lives on the JournalApp and the
// window re-reads it on every refresh.
func (app *JournalApp) ShowEntriesWindow() {
	if app.entriesWindow != nil {
		app.entriesWindow.RequestFocus()
		return
	}

	slog.Info(config.LogMsgOpenEntries, config.LogKeyComponent, config.CompUIEntries)

	win := app.App.NewWindow(app.GetMsg(config.TKeyWinEntries))
	win.Resize(fyne.NewSize(config.EntriesWinWidth, config.EntriesWinHeight))
	app.entriesWindow = win

	selection := config.FilterAll
	formatter := app.buildRelativeFormatter()

	// visible is the filtered slice currently bound to the list. It is
	// only ever swapped on the fyne thread, inside refresh().
	var visible []engine.Entry

	statusLabel := widget.NewLabel("")
	statusLabel.Hide()
	statusLabel.Wrapping = fyne.TextWrapWord

	emptyLabel := widget.NewLabel(app.GetMsg(config.TKeyLblNoEntries))
	emptyLabel.Hide()

	list := widget.NewList(
		func() int { return len(visible) },
		func() fyne.CanvasObject { return newEntryRow() },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(visible) {
				return
			}
			app.bindEntryRow(o, visible[id], win, formatter)
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		if id < len(visible) {
			app.openEntryPage(visible[id].ID)
		}
		list.UnselectAll()
	}

	refresh := func() {
		app.EntriesMut.RLock()
		snapshot := make([]engine.Entry, len(app.Entries))
		copy(snapshot, app.Entries)
		loadErr := app.LoadError
		offline := app.Offline
		app.EntriesMut.RUnlock()

		visible = engine.FilterEntries(snapshot, selection)
		slog.Debug(config.LogMsgFiltered,
			config.LogKeyComponent, config.CompUIEntries,
			config.LogKeyFilter, selection,
			config.LogKeyCount, len(visible),
		)

		switch {
		case offline:
			statusLabel.SetText(app.GetMsg(config.TKeyLblOffline))
			statusLabel.Show()
		case loadErr != "":
			statusLabel.SetText(loadErr)
			statusLabel.Show()
		default:
			statusLabel.Hide()
		}

		if len(visible) == 0 {
			emptyLabel.Show()
		} else {
			emptyLabel.Hide()
		}

		list.Refresh()
	}

	filterSelect := app.buildFilterSelect(func(value string) {
		selection = value
		refresh()
	})

	addButton := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		app.openAddPage(selection)
	})

	topBar := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel(app.GetMsg(config.TKeyLblFilter)), filterSelect),
		addButton,
	)

	content := container.NewBorder(
		container.NewVBox(topBar, statusLabel, emptyLabel),
		nil, nil, nil,
		list,
	)

	win.SetContent(content)
	win.SetOnClosed(func() {
		app.EntriesMut.Lock()
		app.refreshEntriesView = nil
		app.EntriesMut.Unlock()
		app.entriesWindow = nil
	})

	app.EntriesMut.Lock()
	app.refreshEntriesView = refresh
	app.EntriesMut.Unlock()

	refresh()
	win.Show()
}

// buildFilterSelect maps localized category labels to filter values.
func (app *JournalApp) buildFilterSelect(onChanged func(value string)) *widget.Select {
	labelKeys := map[string]string{
		config.FilterAll:     config.TKeyFilterAll,
		config.KindDream:     config.TKeyFilterDream,
		config.KindJournal:   config.TKeyFilterJournal,
		config.KindTada:      config.TKeyFilterTada,
		config.KindGratitude: config.TKeyFilterGratitude,
	}

	options := make([]string, 0, len(config.FilterValues))
	byLabel := make(map[string]string, len(config.FilterValues))
	for _, value := range config.FilterValues {
		label := app.GetMsg(labelKeys[value])
		options = append(options, label)
		byLabel[label] = value
	}

	sel := widget.NewSelect(options, func(label string) {
		onChanged(byLabel[label])
	})
	sel.SetSelectedIndex(0)
	return sel
}

// newEntryRow builds the reusable list row: emoji button, name, date.
func newEntryRow() fyne.CanvasObject {
	emojiBtn := widget.NewButton(config.EmojiButtonFallback, nil)
	name := widget.NewLabel("")
	name.TextStyle = fyne.TextStyle{Bold: true}
	name.Truncation = fyne.TextTruncateEllipsis
	date := widget.NewLabel("")
	return container.NewBorder(nil, nil, emojiBtn, date, name)
}

// bindEntryRow fills one recycled row with entry data. The object layout
// must match newEntryRow: Objects[0] name (center), [1] emoji, [2] date.
func (app *JournalApp) bindEntryRow(o fyne.CanvasObject, e engine.Entry, win fyne.Window, formatter engine.RelativeFormatter) {
	row := o.(*fyne.Container)
	name := row.Objects[0].(*widget.Label)
	emojiBtn := row.Objects[1].(*widget.Button)
	date := row.Objects[2].(*widget.Label)

	display := e.Name
	if display == "" {
		display = config.FallbackName
	}
	name.SetText(display)

	glyph := e.Emoji
	if glyph == "" {
		glyph = config.EmojiButtonFallback
	}
	emojiBtn.SetText(glyph)
	entryID := e.ID
	emojiBtn.OnTapped = func() {
		app.showEmojiPicker(win, entryID)
	}

	date.SetText(engine.FormatRelative(app.Clock.Now(), e.Timestamp, formatter))
}
