package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-journal/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets groups the form inputs so save can read them back.
type settingsWidgets struct {
	language *widget.Select
	url      *widget.Entry
	user     *widget.Entry
	pass     *widget.Entry
	interval *NumericalEntry
	port     *NumericalEntry
}

// ShowSettingsWindow opens (or focuses) the settings window.
func (app *JournalApp) ShowSettingsWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	win := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = win

	w := app.buildSettingsWidgets()

	backendCard := widget.NewCard(app.GetMsg(config.TKeyLblBackend), "",
		container.NewVBox(widget.NewForm(app.buildBackendItems(w)...)),
	)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "",
		widget.NewForm(app.buildGeneralItems(w)...),
	)

	saveBtn := widget.NewButton(app.GetMsg(config.TKeyBtnSave), func() {
		if err := app.saveSettings(w); err != nil {
			slog.Warn(config.MsgSettingsBad,
				config.LogKeyComponent, config.CompUISet,
				config.LogKeyError, err,
			)
			return
		}
		win.Close()
	})
	cancelBtn := widget.NewButton(app.GetMsg(config.TKeyBtnCancel), func() {
		win.Close()
	})

	footer := widget.NewLabel(app.GetMsg(config.TKeyLblFooter))
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewVBox(
		backendCard,
		generalCard,
		container.NewHBox(cancelBtn, saveBtn),
		footer,
	)

	win.SetContent(content)
	win.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	win.SetOnClosed(func() {
		app.Window = nil
	})
	win.Show()
}

// buildBackendItems assembles the connection form with localized hints.
func (app *JournalApp) buildBackendItems(w *settingsWidgets) []*widget.FormItem {
	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), w.url)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)

	return []*widget.FormItem{
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), w.user),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), w.pass),
	}
}

// buildGeneralItems assembles the language/interval/port form with
// localized hints.
func (app *JournalApp) buildGeneralItems(w *settingsWidgets) []*widget.FormItem {
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), w.language)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), container.NewBorder(
		nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), w.interval))
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), w.port)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	return []*widget.FormItem{itemLang, itemInterval, itemPort}
}

func (app *JournalApp) buildSettingsWidgets() *settingsWidgets {
	w := &settingsWidgets{}

	w.language = widget.NewSelect(app.SupportedLanguages, nil)
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	w.language.SetSelected(lang)

	w.url = widget.NewEntry()
	w.url.SetPlaceHolder(config.PlaceholderURL)
	w.url.SetText(app.Preferences.String(config.PrefBackendURL))
	w.url.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrURLReq))
		}
		return nil
	}

	w.user = widget.NewEntry()
	w.user.SetText(app.Preferences.String(config.PrefUsername))

	w.pass = widget.NewPasswordEntry()
	if user := app.Preferences.String(config.PrefUsername); user != "" {
		if pass, err := keyring.Get(config.KeyringService, user); err == nil {
			w.pass.SetText(pass)
		}
	}

	w.interval = NewNumericalEntry()
	w.interval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	w.port = NewNumericalEntry()
	w.port.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	w.port.Validator = app.validatePort

	return w
}

// validatePort ensures the feed port is a number in the valid TCP range.
func (app *JournalApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// saveSettings validates and persists the form. The password goes to the
// system keyring, never to the preferences file.
func (app *JournalApp) saveSettings(w *settingsWidgets) error {
	if err := w.url.Validate(); err != nil {
		return err
	}
	if err := w.port.Validate(); err != nil {
		return err
	}

	interval, err := strconv.Atoi(w.interval.Text)
	if err != nil || interval <= config.DisabledInterval {
		interval = config.DefaultRefreshMin
	}

	app.Preferences.SetString(config.PrefBackendURL, w.url.Text)
	app.Preferences.SetString(config.PrefUsername, w.user.Text)
	app.Preferences.SetInt(config.PrefInterval, interval)
	app.Preferences.SetString(config.PrefServerPort, w.port.Text)

	if w.user.Text != "" && w.pass.Text != "" {
		if kerr := keyring.Set(config.KeyringService, w.user.Text, w.pass.Text); kerr != nil {
			slog.Warn(config.ErrKeyringStore,
				config.LogKeyComponent, config.CompUISet,
				config.LogKeyUser, w.user.Text,
				config.LogKeyError, kerr,
			)
		}
	}

	if w.language.Selected != app.Preferences.String(config.PrefLanguage) {
		app.Preferences.SetString(config.PrefLanguage, w.language.Selected)
		app.UpdateLocalizer()
		app.RefreshTrayMenu()
	}

	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	go app.performSync(false)
	return nil
}
