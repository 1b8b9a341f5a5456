package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/tunza-app/tunza/internal/catalogcache"
	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/datemath"
	"github.com/tunza-app/tunza/internal/eventlog"
	"github.com/tunza-app/tunza/internal/feed"
	"github.com/tunza-app/tunza/internal/i18n"
	"github.com/tunza-app/tunza/internal/remote"
	"github.com/tunza-app/tunza/internal/server"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	serveMode := flag.Bool(config.FlagServe, false, config.FlagDescServe)
	onceMode := flag.Bool(config.FlagOnce, false, config.FlagDescOnce)
	logType := flag.String(config.FlagLog, "", config.FlagDescLog)
	unlogID := flag.Int64(config.FlagUnlog, 0, config.FlagDescUnlog)
	setToken := flag.String(config.FlagSetToken, "", config.FlagDescSetToken)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// We configure structured logging (slog) early to capture startup issues.
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	args := cliArgs{
		serve:    *serveMode,
		once:     *onceMode,
		logType:  *logType,
		unlogID:  *unlogID,
		setToken: *setToken,
	}
	if err := run(ctx, args); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// cliArgs carries the parsed mode selection into run.
type cliArgs struct {
	serve    bool
	once     bool
	logType  string
	unlogID  int64
	setToken string
}

// run loads settings, wires the collaborators, and dispatches to the selected
// mode. Without -serve the program prints the snapshot and exits. The journal
// modes (-log, -unlog) and -set-token work offline.
func run(ctx context.Context, args cliArgs) error {
	if args.setToken != "" {
		if err := remote.SaveToken(args.setToken); err != nil {
			return err
		}
		fmt.Print(config.MsgTokenSetOutput)
		return nil
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	dataDir, err := resolveDataDir(settings.Data.Dir)
	if err != nil {
		return err
	}

	clock := datemath.RealClock{}

	journal, err := openJournal(dataDir, clock)
	if err != nil {
		return err
	}

	if args.logType != "" {
		return logFeeding(journal, clock, args.logType)
	}
	if args.unlogID != 0 {
		if err := journal.Remove(args.unlogID); err != nil {
			return err
		}
		fmt.Printf(config.MsgRemovedOutput, args.unlogID)
		return nil
	}

	token, err := remote.ResolveToken()
	if err != nil {
		return err
	}

	client := remote.NewClient(settings.API.BaseURL, token)
	client.HTTP.Timeout = settings.API.Timeout

	cache, err := catalogcache.Open(dataDir, client, clock, settings.Data.CacheTTL)
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	builder := &feed.Builder{
		Clock:           clock,
		Translator:      i18n.New(settings.Locale.Language),
		ReminderTrigger: settings.Server.ReminderTrigger,
	}

	if args.serve && !args.once {
		return serve(ctx, settings, client, cache, builder)
	}
	return snapshot(ctx, client, cache, builder, journal)
}

// openJournal opens the local feeding journal stored under dataDir.
func openJournal(dataDir string, clock datemath.Clock) (*eventlog.Store, error) {
	persister, err := eventlog.NewFilePersister(dataDir)
	if err != nil {
		return nil, err
	}
	return eventlog.New(clock, persister)
}

// logFeeding appends a feeding session stamped with the current time.
func logFeeding(journal *eventlog.Store, clock datemath.Clock, feedType string) error {
	if !eventlog.ValidFeedType(feedType) {
		return fmt.Errorf("%s: %q (expected one of: %s)",
			config.ErrFeedTypeUnknown, feedType, strings.Join(eventlog.FeedTypes(), ", "))
	}

	stored, err := journal.Append(eventlog.NewFeedingLog(eventlog.FeedingLog{
		Time:     clock.Now().Format(config.DateFormatLocalMin),
		FeedType: feedType,
	}))
	if err != nil {
		return err
	}

	fmt.Printf(config.MsgLoggedOutput, feedType, stored.ID)
	return nil
}

// snapshot prints today's household summary to stdout.
func snapshot(ctx context.Context, client *remote.Client, cache *catalogcache.Cache, builder *feed.Builder, journal *eventlog.Store) error {
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	babies, err := client.Babies(ctx)
	if err != nil {
		return err
	}
	reminders, err := client.Reminders(ctx)
	if err != nil {
		return err
	}

	// Tip failures are not fatal to the snapshot.
	tip, err := cache.DailyTip(ctx)
	if err != nil {
		slog.Warn(config.MsgRefreshFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
	}

	fmt.Print(builder.Snapshot(user, babies, reminders, tip, journal.List()))
	return nil
}

// serve runs the local feed server with a periodic background refresh.
func serve(ctx context.Context, settings *config.Settings, client *remote.Client, cache *catalogcache.Cache, builder *feed.Builder) error {
	srv := server.NewFeedServer(settings.Server.Port)

	refresh := func(ctx context.Context) {
		log := slog.With(config.LogKeyComponent, config.CompWorker)
		log.Info(config.MsgRefreshStart)

		babies, err := client.Babies(ctx)
		if err != nil {
			log.Warn(config.MsgRefreshFailed, config.LogKeyError, err)
			return
		}
		reminders, err := client.Reminders(ctx)
		if err != nil {
			log.Warn(config.MsgRefreshFailed, config.LogKeyError, err)
			return
		}

		ics, err := builder.Calendar(babies, reminders)
		if err != nil {
			log.Warn(config.MsgRefreshFailed, config.LogKeyError, err)
			return
		}
		vcf, err := builder.VCards(babies)
		if err != nil {
			log.Warn(config.MsgRefreshFailed, config.LogKeyError, err)
			return
		}

		srv.UpdateCalendar(ics)
		srv.UpdateVCards(vcf)
		log.Info(config.MsgRefreshDone, config.LogKeyCount, len(babies))
	}

	// Initial population before the first tick.
	refresh(ctx)

	if settings.Server.RefreshMinutes > 0 {
		go refreshWorker(ctx, time.Duration(settings.Server.RefreshMinutes)*time.Minute, refresh)
	}

	return srv.Start(ctx)
}

// refreshWorker re-renders the feeds on a fixed interval until the context
// is cancelled.
func refreshWorker(ctx context.Context, interval time.Duration, refresh func(context.Context)) {
	slog.Info(config.MsgWorkerStart,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyInterval, interval.String(),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info(config.MsgWorkerStop, config.LogKeyComponent, config.CompWorker)
			return
		case <-ticker.C:
			refresh(ctx)
		}
	}
}

// resolveDataDir falls back to the platform data directory when no explicit
// path is configured.
func resolveDataDir(configured string) (string, error) {
	dir := configured
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
		}
		dir = filepath.Join(base, config.AppID)
	}
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return dir, nil
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuiltAt, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	// 1. Always write to Stdout.
	writers = append(writers, os.Stdout)

	// 2. Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
