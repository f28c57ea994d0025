package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-journal/internal/config"
	"github.com/tartampluch/go-journal/internal/engine"
	"github.com/tartampluch/go-journal/internal/server"
	"github.com/tartampluch/go-journal/internal/store"
	"github.com/zalando/go-keyring"
)

// JournalApp holds the application state and dependencies.
type JournalApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server *server.FeedServer
	Client engine.EntryAPI
	Store  *store.Store
	Clock  engine.Clock

	Tray             desktop.App
	Menu             *fyne.Menu
	TrayStatusItem   *fyne.MenuItem
	TrayEntriesItem  *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	// configChan signals the background worker when the refresh interval
	// preference changes.
	configChan chan string

	// Entry state shared between the sync pipeline and the entries window.
	EntriesMut sync.RWMutex
	Entries    []engine.Entry
	LoadError  string // message from the last failed load, empty when healthy
	Offline    bool   // true while showing the cached snapshot

	loading  atomic.Bool
	updating atomic.Bool // emoji mutation in flight

	entriesWindow      fyne.Window
	refreshEntriesView func() // set while the entries window is open

	pickerMut sync.Mutex
	picker    interface{ Hide() }
}

// NewJournalApp constructs the controller around an initialized fyne App.
func NewJournalApp(ctx context.Context, fyneApp fyne.App, srv *server.FeedServer, client engine.EntryAPI, st *store.Store) *JournalApp {
	app := &JournalApp{
		App:         fyneApp,
		Preferences: fyneApp.Preferences(),
		Ctx:         ctx,
		Server:      srv,
		Client:      client,
		Store:       st,
		Clock:       engine.RealClock{},
		configChan:  make(chan string, config.ChannelBufferSize),
	}
	app.SetupI18n()
	return app
}

// Run wires the tray, starts the background worker and blocks on the
// fyne event loop until the context is cancelled.
func (app *JournalApp) Run() {
	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported, config.LogKeyComponent, config.CompUI)
	}

	app.watchPreferences()

	go app.backgroundWorker()
	go app.performSync(false)

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(func() { app.App.Quit() })
	}()

	app.App.Run()
}

// watchPreferences forwards interval changes to the worker.
func (app *JournalApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
			// Worker already has a pending signal.
		}
	})
}

func (app *JournalApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, app.ShowEntriesWindow)
	app.TrayEntriesItem = fyne.NewMenuItem("", app.ShowEntriesWindow)
	app.TrayRefreshItem = fyne.NewMenuItem("", func() {
		go app.performSync(true)
	})
	app.TraySettingsItem = fyne.NewMenuItem("", app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayEntriesItem,
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	app.RefreshTrayMenu()
	app.Tray.SetSystemTrayMenu(app.Menu)
}

// RefreshTrayMenu re-localizes the static menu labels. Called at startup
// and after a language change.
func (app *JournalApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayEntriesItem.Label = app.GetMsg(config.TKeyMenuEntries)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker triggers periodic syncs and reacts to interval changes.
func (app *JournalApp) backgroundWorker() {
	interval := app.currentInterval()
	slog.Info(config.MsgWorkerStart,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyInterval, interval.String(),
	)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-app.Ctx.Done():
			slog.Info(config.MsgWorkerStop, config.LogKeyComponent, config.CompWorker)
			return
		case <-ticker.C:
			app.performSync(false)
		case <-app.configChan:
			newInterval := app.currentInterval()
			if newInterval != interval {
				slog.Info(config.MsgUpdateSync,
					config.LogKeyComponent, config.CompWorker,
					config.LogKeyOld, interval.String(),
					config.LogKeyNew, newInterval.String(),
				)
				interval = newInterval
				ticker.Reset(interval)
			}
		}
	}
}

func (app *JournalApp) currentInterval() time.Duration {
	minutes := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if minutes <= config.DisabledInterval {
		minutes = config.DefaultRefreshMin
	}
	return time.Duration(minutes) * time.Minute
}

// loadSyncConfig assembles the backend connection settings from the
// preferences and the system keyring.
func (app *JournalApp) loadSyncConfig() engine.SyncConfig {
	cfg := engine.SyncConfig{
		BackendURL: app.Preferences.String(config.PrefBackendURL),
		User:       app.Preferences.String(config.PrefUsername),
	}

	if cfg.User != "" {
		pass, err := keyring.Get(config.KeyringService, cfg.User)
		if err != nil {
			slog.Debug(config.MsgPassFail,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyUser, cfg.User,
				config.LogKeyError, err,
			)
		} else {
			cfg.Pass = pass
		}
	}

	return cfg
}

// performSync runs the full load pipeline: fetch, resolve, publish the
// feed, persist the snapshot and refresh the UI. Safe for concurrent
// callers; the loading flag is cleared on every exit path.
func (app *JournalApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual,
	)

	app.loading.Store(true)
	defer func() {
		app.loading.Store(false)
		app.notifyEntriesView()
	}()

	if manual {
		app.notify(config.AppName, app.GetMsg(config.TKeyNotifStart))
	}

	journal := &engine.Journal{Clock: app.Clock, Client: app.Client}
	feed, entries, today, err := journal.RunSync(app.Ctx, app.loadSyncConfig())
	if err != nil {
		app.handleSyncFailure(err, manual)
		return
	}

	app.EntriesMut.Lock()
	app.Entries = entries
	app.LoadError = ""
	app.Offline = false
	app.EntriesMut.Unlock()

	if app.Store != nil {
		if serr := app.Store.ReplaceSnapshot(entries); serr != nil {
			slog.Warn(config.ErrCacheWrite,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyError, serr,
			)
		} else {
			slog.Debug(config.MsgSnapshotSaved,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyCount, len(entries),
			)
		}
	}

	if app.Server != nil {
		app.Server.Update(feed)
	}

	app.updateTrayStatus(today)

	if manual {
		app.notify(config.AppName, app.GetMsg(config.TKeyNotifSuccess))
	}
}

// handleSyncFailure records the error and falls back to the cached
// snapshot so the entries window keeps working offline.
func (app *JournalApp) handleSyncFailure(err error, manual bool) {
	msg := deriveMessage(err, config.FallbackErrLoad)
	slog.Error(config.MsgSyncFailed,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyError, err,
	)

	cached := app.loadCachedSnapshot()

	app.EntriesMut.Lock()
	app.LoadError = msg
	if len(cached) > 0 {
		app.Entries = cached
		app.Offline = true
	} else {
		app.Entries = nil
		app.Offline = false
	}
	app.EntriesMut.Unlock()

	app.updateTrayError()

	if manual {
		app.notify(config.TitleSyncError, app.GetMsg(config.TKeyNotifError))
	}
}

func (app *JournalApp) loadCachedSnapshot() []engine.Entry {
	if app.Store == nil {
		return nil
	}
	cached, err := app.Store.Snapshot()
	if err != nil {
		slog.Warn(config.ErrCacheRead,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyError, err,
		)
		return nil
	}
	if len(cached) > 0 {
		slog.Info(config.MsgSnapshotLoaded,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyCount, len(cached),
		)
	}
	return cached
}

// applyEmoji runs the emoji mutation for one entry: remote PATCH first,
// then the local mirror and the snapshot cache. The updating flag stays
// set until the picker is dismissed so a second operation cannot start.
func (app *JournalApp) applyEmoji(id, emoji string) error {
	app.updating.Store(true)
	defer func() {
		// closeEmojiPicker clears the updating flag only once the picker
		// is actually hidden, so a tap on a still-visible picker cannot
		// start a second mutation.
		app.closeEmojiPicker()
		app.notifyEntriesView()
	}()

	if err := app.Client.UpdateEmoji(app.Ctx, app.loadSyncConfig(), id, emoji); err != nil {
		slog.Error(config.MsgEmojiFailed,
			config.LogKeyComponent, config.CompUIEntries,
			config.LogKeyEntryID, id,
			config.LogKeyError, err,
		)
		return err
	}

	app.EntriesMut.Lock()
	for i := range app.Entries {
		if app.Entries[i].ID == id {
			app.Entries[i].Emoji = emoji
			break
		}
	}
	app.EntriesMut.Unlock()

	if app.Store != nil {
		if serr := app.Store.UpdateEmoji(id, emoji); serr != nil {
			slog.Warn(config.ErrCacheWrite,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyEntryID, id,
				config.LogKeyError, serr,
			)
		}
	}

	slog.Info(config.MsgEmojiUpdated,
		config.LogKeyComponent, config.CompUIEntries,
		config.LogKeyEntryID, id,
		config.LogKeyEmoji, emoji,
	)
	return nil
}

// updateTrayStatus refreshes the first tray item with today's entry count.
func (app *JournalApp) updateTrayStatus(todayCount int) {
	if app.Menu == nil {
		return
	}

	label := app.trayStatusLabel(todayCount)
	fyne.Do(func() {
		app.TrayStatusItem.Label = label
		app.Menu.Refresh()
	})
}

func (app *JournalApp) updateTrayError() {
	if app.Menu == nil {
		return
	}
	fyne.Do(func() {
		app.TrayStatusItem.Label = config.FallbackTrayError
		app.Menu.Refresh()
	})
}

// trayStatusLabel builds the localized status line. Extracted for testing.
func (app *JournalApp) trayStatusLabel(todayCount int) string {
	if todayCount <= 0 {
		if msg := app.GetMsg(config.TKeyTrayStatusZero); msg != config.TKeyTrayStatusZero {
			return msg
		}
		return fmt.Sprintf(config.FallbackTrayDefault, 0)
	}

	if app.Localizer != nil {
		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyTrayStatus,
			PluralCount:  todayCount,
			TemplateData: map[string]interface{}{"Count": todayCount},
		})
		if err == nil {
			return msg
		}
	}
	return fmt.Sprintf(config.FallbackTrayDefault, todayCount)
}

// buildRelativeFormatter localizes the relative date buckets. The
// fallback path keeps the entries window readable when a translation
// is missing.
func (app *JournalApp) buildRelativeFormatter() engine.RelativeFormatter {
	return func(bucket engine.RelBucket, days int64, t time.Time) string {
		if app.Localizer == nil {
			return engine.FormatRelativeFallback(bucket, days, t)
		}

		switch bucket {
		case engine.RelToday:
			if msg := app.GetMsg(config.TKeyRelToday); msg != config.TKeyRelToday {
				return msg
			}
		case engine.RelYesterday:
			if msg := app.GetMsg(config.TKeyRelYesterday); msg != config.TKeyRelYesterday {
				return msg
			}
		case engine.RelDaysAgo:
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyRelDaysAgo,
				PluralCount:  days,
				TemplateData: map[string]interface{}{"Count": days},
			})
			if err == nil {
				return msg
			}
		default:
			if layout := app.GetMsg(config.TKeyFormatMonthDay); layout != config.TKeyFormatMonthDay {
				return t.Format(layout)
			}
		}

		return engine.FormatRelativeFallback(bucket, days, t)
	}
}

// openAddPage opens the backend's entry creation form in the browser,
// pre-selecting the given kind unless the category filter is on "all".
func (app *JournalApp) openAddPage(kind string) {
	base := app.Preferences.String(config.PrefBackendURL)
	target, err := url.Parse(base)
	if err != nil || base == "" {
		slog.Warn(config.ErrBackendURLEmpty, config.LogKeyComponent, config.CompUIEntries)
		return
	}

	target = target.JoinPath(config.WebPathAdd)
	if kind != "" && kind != config.FilterAll {
		q := target.Query()
		q.Set(config.QueryKeyType, kind)
		target.RawQuery = q.Encode()
	}

	app.openURL(target)
}

// openEntryPage opens the backend's detail page for one entry.
func (app *JournalApp) openEntryPage(id string) {
	base := app.Preferences.String(config.PrefBackendURL)
	target, err := url.Parse(base)
	if err != nil || base == "" {
		slog.Warn(config.ErrBackendURLEmpty, config.LogKeyComponent, config.CompUIEntries)
		return
	}

	app.openURL(target.JoinPath(config.WebPathEntry, id))
}

func (app *JournalApp) openURL(target *url.URL) {
	slog.Debug(config.MsgNavOpen,
		config.LogKeyComponent, config.CompUIEntries,
		config.LogKeyURL, target.String(),
	)
	if err := app.App.OpenURL(target); err != nil {
		slog.Warn(config.ErrInvalidURL,
			config.LogKeyComponent, config.CompUIEntries,
			config.LogKeyError, err,
		)
	}
}

// notifyEntriesView asks the entries window (if open) to redraw.
func (app *JournalApp) notifyEntriesView() {
	app.EntriesMut.RLock()
	refresh := app.refreshEntriesView
	app.EntriesMut.RUnlock()

	if refresh != nil {
		fyne.Do(refresh)
	}
}

func (app *JournalApp) notify(title, content string) {
	app.App.SendNotification(fyne.NewNotification(title, content))
}

// deriveMessage extracts a displayable message from an error.
func deriveMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
