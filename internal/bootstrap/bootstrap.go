package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	achievementinadapter "studyplanner/internal/modules/achievement/adapter/in"
	achievementoutadapter "studyplanner/internal/modules/achievement/adapter/out"
	achievementservice "studyplanner/internal/modules/achievement/service"
	achievementusecase "studyplanner/internal/modules/achievement/usecase"
	libraryinadapter "studyplanner/internal/modules/library/adapter/in"
	libraryoutadapter "studyplanner/internal/modules/library/adapter/out"
	librarydto "studyplanner/internal/modules/library/dto"
	libraryout "studyplanner/internal/modules/library/port/out"
	libraryservice "studyplanner/internal/modules/library/service"
	libraryusecase "studyplanner/internal/modules/library/usecase"
	preferenceinadapter "studyplanner/internal/modules/preference/adapter/in"
	preferenceoutadapter "studyplanner/internal/modules/preference/adapter/out"
	preferenceusecase "studyplanner/internal/modules/preference/usecase"
	sessioninadapter "studyplanner/internal/modules/session/adapter/in"
	sessionoutadapter "studyplanner/internal/modules/session/adapter/out"
	sessionservice "studyplanner/internal/modules/session/service"
	sessionusecase "studyplanner/internal/modules/session/usecase"
	statsinadapter "studyplanner/internal/modules/stats/adapter/in"
	statsservice "studyplanner/internal/modules/stats/service"
	statsusecase "studyplanner/internal/modules/stats/usecase"
	timerinadapter "studyplanner/internal/modules/timer/adapter/in"
	timeroutadapter "studyplanner/internal/modules/timer/adapter/out"
	timerusecase "studyplanner/internal/modules/timer/usecase"
	"studyplanner/internal/platform/activitylog"
	"studyplanner/internal/platform/clock"
	"studyplanner/internal/platform/config"
	"studyplanner/internal/platform/events"
	"studyplanner/internal/platform/id"
	"studyplanner/internal/platform/kvstore"
	"studyplanner/internal/platform/notify"
	"studyplanner/internal/platform/sqlitedb"
)

type App struct {
	Config   config.Config
	Clock    clock.Clock
	Activity *activitylog.Logger

	SessionCLI    sessioninadapter.CLIHandler
	StatsCLI      statsinadapter.CLIHandler
	BadgeCLI      achievementinadapter.CLIHandler
	TimerCLI      timerinadapter.CLIHandler
	TimerTUI      timerinadapter.TUIHandler
	LibraryCLI    libraryinadapter.CLIHandler
	PreferenceCLI preferenceinadapter.CLIHandler

	closers []func() error
}

// New wires every module against cfg and loads the saved sessions. Messages
// meant for the user go to notifier; diagnostics go to logger.
func New(ctx context.Context, cfg config.Config, notifier notify.Notifier, logger *log.Logger) (*App, error) {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = log.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.SystemClock{Location: loc}
	app := &App{Config: cfg, Clock: clk}

	db, store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, db.Close)
	guarded := kvstore.NewGuarded(store, notifier, logger)

	activityPath := cfg.ActivityLogPath
	if cfg.Ephemeral {
		dir, err := os.MkdirTemp("", "studyplanner-*")
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("create scratch dir: %w", err)
		}
		app.closers = append(app.closers, func() error { return os.RemoveAll(dir) })
		activityPath = filepath.Join(dir, filepath.Base(cfg.ActivityLogPath))
	}
	activity, err := activitylog.NewLogger(activityPath, clk.Now)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Activity = activity

	bus := events.NewBus()

	badgeStore := achievementoutadapter.NewKVBadgeStore(guarded)
	achievementUC := achievementusecase.NewInteractor(
		achievementservice.NewEvaluator(badgeStore, notifier, logger),
		badgeStore,
		bus,
		activity,
		notifier,
	)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, id.UUID{}),
		sessionservice.NewRepository(sessionoutadapter.NewKVSessionStore(guarded), notifier, logger),
		sessionoutadapter.NewFileArchive(),
		sessionoutadapter.NewMarkdownNoteExporter(),
		bus,
		activity,
		notifier,
	)

	statsUC := statsusecase.NewInteractor(statsservice.NewAggregator(clk), sessionUC, achievementUC)
	unsubscribe := statsusecase.Subscribe(bus, statsUC, func(err error) {
		logger.Printf("refresh badges: %v", err)
	})
	app.closers = append(app.closers, func() error { unsubscribe(); return nil })

	timerUC := timerusecase.NewInteractor(
		cfg.TimerDefaultMinutes,
		timeroutadapter.NewSystemTicker(),
		achievementUC,
		bus,
		activity,
		notifier,
	)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	index, err := libraryoutadapter.NewSQLiteResourceIndex(ctx, db)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new resource index: %w", err)
	}
	providers := map[string]libraryout.Provider{
		librarydto.ProviderDevto:  libraryoutadapter.NewDevtoClient(httpClient, cfg.DevtoBaseURL),
		librarydto.ProviderGitHub: libraryoutadapter.NewGitHubClient(httpClient, cfg.GitHubBaseURL, cfg.GitHubToken),
		librarydto.ProviderFeed:   libraryoutadapter.NewFeedProvider(httpClient),
	}
	libraryUC := libraryusecase.NewInteractor(
		libraryservice.NewResourceService(libraryoutadapter.NewEmbeddedCatalog(), index, providers, notifier, logger),
		libraryservice.NewWatchlist(libraryoutadapter.NewKVWatchlistStore(guarded), notifier, logger),
		libraryoutadapter.NewHTMLPreviewClient(httpClient),
		libraryoutadapter.NewOSExternalLauncher(),
		sessionUC,
		notifier,
	)

	preferenceUC := preferenceusecase.NewInteractor(
		preferenceoutadapter.NewKVPreferenceStore(guarded),
		preferenceoutadapter.NewTerminalTheme(),
	)

	if _, err := sessionUC.Load(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC, clk)
	app.StatsCLI = statsinadapter.NewCLIHandler(statsUC)
	app.BadgeCLI = achievementinadapter.NewCLIHandler(achievementUC)
	app.TimerCLI = timerinadapter.NewCLIHandler(timerUC)
	app.TimerTUI = timerinadapter.NewTUIHandler(timerUC)
	app.LibraryCLI = libraryinadapter.NewCLIHandler(libraryUC)
	app.PreferenceCLI = preferenceinadapter.NewCLIHandler(preferenceUC)
	return app, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// openStorage opens the SQLite database and the key/value store on top of it.
// Ephemeral runs keep both in memory.
func openStorage(ctx context.Context, cfg config.Config) (*sql.DB, kvstore.Store, error) {
	if cfg.Ephemeral {
		db, err := sqlitedb.Open(":memory:")
		if err != nil {
			return nil, nil, err
		}
		return db, kvstore.NewMemoryStore(cfg.StorageQuotaBytes), nil
	}
	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := kvstore.NewSQLiteStore(ctx, db, cfg.StorageQuotaBytes)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("open kv store: %w", err)
	}
	return db, store, nil
}
