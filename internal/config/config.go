package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Journal/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Journal"
	AppID             = "com.github.tartampluch.go-journal"
	KeyringService    = "com.github.tartampluch.go-journal"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	CacheDBFileName   = "entries.db"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs and the snapshot cache.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Preferences
// -----------------------------------------------------------------------------

const (
	PrefBackendURL = "backend_url"
	PrefUsername   = "username"
	PrefLanguage   = "language"
	PrefInterval   = "refresh_interval_min"
	PrefServerPort = "server_port"
	PrefLastRun    = "last_run_version"
)

// -----------------------------------------------------------------------------
// Entry Model: Kinds & Filters
// -----------------------------------------------------------------------------

// Canonical entry kinds. The backend stores a free string; everything the
// journal cares about resolves to one of these four values at ingestion.
const (
	KindDream     = "dream"
	KindJournal   = "journal"
	KindTada      = "tada"
	KindGratitude = "gratitude"
)

// Legacy type spellings still present in older backend records.
const (
	LegacyTypeNote           = "note"
	LegacyTypeAccomplishment = "accomplishment"
)

// FilterAll selects every loaded entry regardless of category.
const FilterAll = "all"

// FilterValues lists the selectable category filters, in display order.
var FilterValues = []string{FilterAll, KindDream, KindJournal, KindTada, KindGratitude}

// -----------------------------------------------------------------------------
// Relative Date Policy
// -----------------------------------------------------------------------------

const (
	// MillisPerDay is the fixed divisor for day-delta computation.
	// The delta is a floor of the millisecond difference, intentionally NOT
	// calendar-aware: entries written near midnight land in whichever bucket
	// the raw arithmetic produces.
	MillisPerDay int64 = 86_400_000

	// RelDaysAgoMax is the largest delta rendered as "N days ago".
	// Anything above falls through to the month/day format.
	RelDaysAgoMax = 6
)

// -----------------------------------------------------------------------------
// UI Entries Window Constants
// -----------------------------------------------------------------------------

const (
	EntriesWinWidth  = 560
	EntriesWinHeight = 480

	SettingsWindowWidth = 600

	// Shown on the picker button when an entry has no emoji yet.
	EmojiButtonFallback = "…"

	DateFormatMonthDay = "Jan 2"
	LogMsgOpenEntries  = "Opening Entries Window"
	LogMsgFiltered     = "Entries filtered"
)

// DefaultEmojiPalette is offered by the picker.
var DefaultEmojiPalette = []string{
	"📝", "🌙", "✨", "🙏", "🎉", "💤", "🔥", "🌊",
	"🌞", "🌈", "💡", "🎯", "🧘", "🏃", "🍀", "❤️",
}

// PickerColumns defines the emoji grid width.
const PickerColumns = 8

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle     = "win_title"
	TKeyWinEntries   = "win_entries_title"
	TKeyMenuEntries  = "menu_entries"
	TKeyMenuRefresh  = "menu_refresh"
	TKeyMenuSettings = "menu_settings"

	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0
	TKeyNotifStart     = "notif_sync_start"
	TKeyNotifSuccess   = "notif_sync_success"
	TKeyNotifError     = "notif_err_sync"

	TKeyLblLanguage  = "lbl_language"
	TKeyHelpLanguage = "help_language"
	TKeyLblMinutes   = "lbl_minutes_suffix"
	TKeyLblRefresh   = "lbl_refresh_interval"
	TKeyHelpInterval = "help_interval"
	TKeyLblPort      = "lbl_server_port"
	TKeyHelpPort     = "help_port"
	TKeyLblGeneral   = "lbl_general"
	TKeyLblBackend   = "lbl_backend"
	TKeyLblURL       = "lbl_url"
	TKeyHelpURL      = "help_backend_url"
	TKeyLblUser      = "lbl_user"
	TKeyLblPass      = "lbl_pass"
	TKeyBtnSave      = "btn_save"
	TKeyBtnCancel    = "btn_cancel"
	TKeyLblFooter    = "lbl_footer"

	// Entries window
	TKeyLblFilter     = "lbl_filter"
	TKeyLblNoEntries  = "lbl_no_entries"
	TKeyLblOffline    = "lbl_offline_snapshot"
	TKeyBtnAdd        = "btn_add"
	TKeyPickerTitle   = "picker_title"
	TKeyDlgUpdateFail = "dlg_update_failed"

	// Filter labels
	TKeyFilterAll       = "filter_all"
	TKeyFilterDream     = "filter_dream"
	TKeyFilterJournal   = "filter_journal"
	TKeyFilterTada      = "filter_tada"
	TKeyFilterGratitude = "filter_gratitude"

	// Relative dates
	TKeyRelToday       = "rel_today"
	TKeyRelYesterday   = "rel_yesterday"
	TKeyRelDaysAgo     = "rel_days_ago"     // Requires Count (pluralized)
	TKeyFormatMonthDay = "format_month_day" // Go layout (e.g. "Jan 2")

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrURLReq    = "err_url_required"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort       = "18081"
	DefaultRefreshMin = 15
	DefaultLanguage   = "en"
	DisabledInterval  = 0
)

// -----------------------------------------------------------------------------
// Backend API Surface
// -----------------------------------------------------------------------------

const (
	// REST routes consumed by the client.
	APIPathEntries = "/api/entries"

	// Web routes opened in the system browser for navigation.
	WebPathAdd   = "/add"
	WebPathEntry = "/entry"
	QueryKeyType = "type"

	// PATCH body field for emoji updates.
	JSONFieldEmoji = "emoji"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar Feed
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Journal//Engine//EN"
	ICalCalName   = "Journal"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VJOURNAL"
	ICalDomain    = "gojournal"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	FormatUID = "%s@%s"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Limits
// -----------------------------------------------------------------------------

const (
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"

	// MaxAPIResponseSize bounds a single entries payload. Journals are text;
	// 32MB leaves generous headroom without risking RAM on a broken backend.
	MaxAPIResponseSize = 32 * 1024 * 1024

	SchemeHTTP    = "http"
	SchemeHTTPS   = "https"
	RouteRoot     = "/"
	AddrSeparator = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderRequestID       = "X-Request-Id"
	HeaderAccept          = "Accept"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeApplicationJSON = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrBackendURLEmpty  = "configuration error: backend URL is empty"
	ErrClientMissing    = "internal error: entry API client is not initialized"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrDecodeEntries    = "failed to decode entries payload"
	ErrEncodeEmoji      = "failed to encode emoji payload"
	ErrEmojiRejected    = "emoji update rejected by backend"
	ErrICalEncode       = "failed to encode iCalendar feed"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrKeyringStore     = "failed to store password in keyring"
	ErrCacheOpen        = "failed to open snapshot cache"
	ErrCacheWrite       = "failed to write snapshot cache"
	ErrCacheRead        = "failed to read snapshot cache"
	ErrEntryNotFound    = "entry not found in snapshot"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Journal feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackToday     = "Today"
	FallbackYesterday = "Yesterday"
	FallbackDaysAgo   = "%d days ago"

	FallbackTrayError   = "Go Journal: Sync Error"
	FallbackTrayDefault = "Go Journal (%d today)"
	FallbackTrayLabel   = "Go Journal"
	FallbackName        = "Untitled"
	FallbackErrLoad     = "failed to load entries"
	FallbackErrUpdate   = "failed to update emoji"

	// StubVCalendar is the minimal valid iCalendar object used when no
	// journal entries are loaded, so subscribed clients never see an
	// invalid feed.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleSyncError = "Sync Error"

	MsgSyncStarted    = "Entry synchronization started..."
	MsgSyncFailed     = "Entry synchronization failed. Check logs."
	MsgSyncReq        = "Sync requested"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgUpdateSync     = "Updating sync interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedNoTime  = "Skipping record without any timestamp field"
	MsgSkippedKind    = "Skipping non-journal record"
	MsgLoadSuccess    = "Entry load successful"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgFeedUpdated    = "Journal feed cache updated"
	MsgSnapshotSaved  = "Snapshot cache updated"
	MsgSnapshotLoaded = "Serving cached snapshot after fetch failure"
	MsgEmojiUpdated   = "Entry emoji updated"
	MsgEmojiFailed    = "Entry emoji update failed"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgSettingsSaved  = "Settings saved"
	MsgSettingsBad    = "Settings rejected by validation"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgNavOpen        = "Opening backend page"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_records"
	LogKeyKept      = "entries_kept"
	LogKeySkipped   = "entries_skipped"
	LogKeyToday     = "entries_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyStats     = "stats"
	LogKeyFilter    = "filter"
	LogKeyCount     = "count"
	LogKeyEntryID   = "entry_id"
	LogKeyKind      = "kind"
	LogKeyEmoji     = "emoji"
	LogKeyRequestID = "request_id"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompUIEntries = "ui_entries"
	CompEngine    = "engine"
	CompServer    = "server"
	CompClient    = "client"
	CompStore     = "store"
	CompWorker    = "worker"
	CompMain      = "main"
	CompI18n      = "i18n"
)
