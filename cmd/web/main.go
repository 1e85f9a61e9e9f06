package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jlahtela/ridgeline/internal/e2etest"
	"github.com/jlahtela/ridgeline/internal/envstruct"
	"github.com/jlahtela/ridgeline/internal/errors"
	"github.com/jlahtela/ridgeline/internal/flightrecorder"
	"github.com/jlahtela/ridgeline/internal/logging"
	"github.com/jlahtela/ridgeline/internal/sqlite"
	"github.com/jlahtela/ridgeline/internal/training"
)

type application struct {
	logger          *slog.Logger
	sessionManager  *scs.SessionManager
	templateFS      fs.FS
	trainingService *training.Service
	flightRecorder  *flightrecorder.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"RIDGELINE_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"RIDGELINE_SQLITE_URL" envDefault:"./ridgeline.sqlite3"`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"RIDGELINE_TEMPLATE_PATH" envDefault:""`
	// TracesPath enables flight recording of request timeouts when set to a writable directory.
	TracesPath string `env:"RIDGELINE_TRACES_PATH" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveAndVerifyTemplatePath(cfg.TemplatePath); err != nil {
		return errors.Wrap(err, "resolve template path")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db", slog.String(e2etest.LogDsnKey, cfg.SqliteURL))

	var recorder *flightrecorder.Service
	if cfg.TracesPath != "" {
		if recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			MinAge:          0,
			MaxBytes:        0,
			TracesDirectory: cfg.TracesPath,
		}); err != nil {
			return errors.Wrap(err, "create flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
	}

	app := application{
		logger:          logger,
		sessionManager:  initializeSessionManager(db),
		templateFS:      os.DirFS(htmlTemplatePath),
		trainingService: training.NewService(db, logger),
		flightRecorder:  recorder,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 12 * time.Hour                                                //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
