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
var UserAgent = "Tunza/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Tunza"
	AppID             = "com.github.tunza-app.tunza"
	KeyringService    = "com.github.tunza-app.tunza"
	KeyringTokenUser  = "api_token"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
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
	// Used for sensitive files like logs and the event journal.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure data directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion       = "version"
	FlagDebug         = "debug"
	FlagServe         = "serve"
	FlagOnce          = "once"
	FlagLog           = "log"
	FlagUnlog         = "unlog"
	FlagSetToken      = "set-token"
	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stdout"
	FlagDescServe     = "Run the local calendar feed server"
	FlagDescOnce      = "Print today's care snapshot and exit"
	FlagDescLog       = "Record a feeding session of the given type (breast, bottle, formula, solids) and exit"
	FlagDescUnlog     = "Remove the journal entry with the given id and exit"
	FlagDescSetToken  = "Store the API token in the system keyring and exit"
	MsgVersionOutput  = "%s version %s (%s/%s)\n"
	MsgLoggedOutput   = "Logged %s feeding as entry %d\n"
	MsgRemovedOutput  = "Removed entry %d\n"
	MsgTokenSetOutput = "API token stored in system keyring\n"
)

// -----------------------------------------------------------------------------
// Temporal Classification
// -----------------------------------------------------------------------------

// The average-month and average-year divisors are deliberate approximations.
// Schedule brackets were calibrated against them; switching to exact calendar
// months would silently shift bracket boundaries.
const (
	DaysPerWeek      = 7
	AvgDaysPerMonth  = 30.44
	AvgDaysPerYear   = 365.25
	AgeMonthsCap     = 24
	AgeDaysLabelMax  = 7
	AgeWeeksLabelMax = 30
	AgeMonthLabelMax = 365

	// GestationDays is the fixed 40-week gestation length used to estimate
	// the last menstrual period from a due date.
	GestationDays     = 280
	GestationWeeksMax = 40

	// Trimester boundaries are inclusive-below: week 13 itself is Trimester 2.
	TrimesterTwoWeek   = 13
	TrimesterThreeWeek = 28
)

// Classification sentinels. These are contract strings consumed by API
// clients and tests; they are not localized.
const (
	LabelAgeUnknown  = "Age unknown"
	LabelNotBornYet  = "Baby not born yet"
	TrimesterOne     = "Trimester 1"
	TrimesterTwo     = "Trimester 2"
	TrimesterThree   = "Trimester 3"
	TrimesterUnknown = "Unknown"

	UnitDay   = "day"
	UnitWeek  = "week"
	UnitMonth = "month"
	UnitYear  = "year"
)

// -----------------------------------------------------------------------------
// Event Log
// -----------------------------------------------------------------------------

const (
	EventLogFileName    = "feeding_logs.json"
	EventKindFeeding    = "feeding"
	EventKindReminder   = "reminder"
	FeedTypeBreast      = "breast"
	FeedTypeBottle      = "bottle"
	FeedTypeFormula     = "formula"
	FeedTypeSolids      = "solids"
	ReminderTypeFeeding = "feeding"
	ReminderTypeBottle  = "bottle-prep"
	ReminderTypePump    = "pump"
	EventDateDisplay    = "1/2/2006"
	EventLogTempSuffix  = ".tmp"
	DefaultReminderGap  = 180 // minutes
)

// -----------------------------------------------------------------------------
// Remote API
// -----------------------------------------------------------------------------

const (
	RouteCurrentUser  = "/users/me"
	RouteBabies       = "/babies"
	RouteReminders    = "/reminders"
	RouteDailyTip     = "/tips/daily"
	RouteVaccines     = "/vaccines"
	RecipientBaby     = "baby"
	RecipientMother   = "mother"
	HeaderAuth        = "Authorization"
	BearerPrefix      = "Bearer "
	VaccineAvoidMark  = "⚠️"
	EnvAPIToken       = "TUNZA_API_TOKEN"
	QueryKeyRecipient = "recipient"
	MimeJSON          = "application/json"
)

// -----------------------------------------------------------------------------
// Catalog Cache (SQLite)
// -----------------------------------------------------------------------------

const (
	CacheFileName   = "catalog.db"
	CacheDriverName = "sqlite"
	DefaultCacheTTL = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort       = "18480"
	DefaultLanguage   = "en"
	UIDSalt           = "tunza-v1-" // Salt for deterministic UID generation
	DisabledInterval  = 0
)

// SupportedLanguages defines the list of available output languages (ISO 639-1).
var SupportedLanguages = []string{"en", "sw"}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Tunza//Care Feed//EN"
	ICalCalName   = "Care Schedule"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "tunza"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & UID Generation
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for dates of birth and due dates.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatLocalSec  = "2006-01-02T15:04:05"
	DateFormatLocalMin  = "2006-01-02T15:04"

	MinPort = 1
	MaxPort = 65535

	// SnapshotJournalMax caps the journal entries shown in the snapshot.
	SnapshotJournalMax = 3

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB; the API returns small JSON payloads
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteCalendar       = "/calendar.ics"
	RouteVCards         = "/babies.vcf"
	AddrSeparator       = ":"
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
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrBaseURLEmpty    = "configuration error: API base URL is empty"
	ErrTokenMissing    = "no API token in keyring or environment"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrDateParse       = "unable to parse date"
	ErrDecodeResponse  = "failed to decode API response"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app data dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrJournalRead     = "failed to read event journal"
	ErrJournalWrite    = "failed to write event journal"
	ErrJournalDecode   = "failed to decode event journal"
	ErrFeedTypeUnknown = "unknown feed type"
	ErrCacheOpen       = "failed to open catalog cache"
	ErrCacheQuery      = "catalog cache query failed"
	ErrCacheWrite      = "catalog cache write failed"
	ErrSettingsLoad    = "failed to load settings"
	ErrSettingsInvalid = "invalid settings"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Feed cache updated"
	MsgRefreshStart   = "Feed refresh started..."
	MsgRefreshDone    = "Feed refresh successful"
	MsgRefreshFailed  = "Feed refresh failed"
	MsgWorkerStart    = "Background refresh worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgSkippedDate    = "Skipping invalid date"
	MsgEventAppended  = "Event appended"
	MsgEventRemoved   = "Event removed"
	MsgEventNotFound  = "Remove requested for unknown event id"
	MsgCacheHit       = "Catalog served from cache"
	MsgCacheMiss      = "Catalog cache miss, fetching remote"
	MsgCacheStale     = "Catalog cache stale, refreshing"
	MsgCacheFallback  = "Remote unreachable, serving stale catalog"
	MsgTokenFromEnv   = "API token loaded from environment"
	MsgTokenFromRing  = "API token loaded from keyring"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgVaccineDueSoon = "Vaccine dose due"
	MsgFeedGenerated  = "Care feed generated"
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
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDueDate   = "due_date"
	LogKeyEventID   = "event_id"
	LogKeyKind      = "kind"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyDuration  = "duration_ms"
	LogKeyFetchedAt = "fetched_at"
	LogKeyStats     = "stats"
	LogKeyReminders = "reminders"
	LogKeyDoses     = "doses"
	LogKeySkipped   = "skipped"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuiltAt = "built_at"
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
	CompClassify = "classify"
	CompEventLog = "eventlog"
	CompRemote   = "remote"
	CompCache    = "catalog_cache"
	CompFeed     = "feed"
	CompServer   = "server"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyEvtReminder    = "event_reminder"    // Requires Title
	TKeyEvtVaccine     = "event_vaccine"     // Requires Name, Dose
	TKeyEvtVaccineOne  = "event_vaccine_one" // Requires Name (single-dose)
	TKeySnapshotAge    = "snapshot_age"   // Requires Name, Age
	TKeySnapshotStage  = "snapshot_stage" // Requires Title
	TKeySnapshotWeek   = "snapshot_week"  // Requires Trimester, Week
	TKeySnapshotTip    = "snapshot_tip"   // Requires Tip
	TKeySnapshotNoRem  = "snapshot_no_reminders"
	TKeySnapshotRemHdr = "snapshot_reminders_header"
	TKeySnapshotLogHdr = "snapshot_journal_header"
)
