// Package server assembles the photodrop server: database, migrations,
// storage signer, services and the HTTP API, and runs it until a shutdown
// signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/photodrop/internal/logging"
	"github.com/dmitrijs2005/photodrop/internal/server/config"
	"github.com/dmitrijs2005/photodrop/internal/server/httpserver"
	"github.com/dmitrijs2005/photodrop/internal/server/issuer"
	"github.com/dmitrijs2005/photodrop/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/photodrop/internal/server/services"
	"github.com/dmitrijs2005/photodrop/internal/server/storage"
)

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newSigner = storage.New
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler *httpserver.Handlers
	signer  storage.Signer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	signer, err := newSigner(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	sessions := services.NewSessionService(db, rm, c)
	photos := services.NewPhotoService(db, rm, signer)
	iss := issuer.New(sessions, signer, issuer.Options{
		DefaultExtension:  c.DefaultExtension,
		AllowedExtensions: c.AllowedExtensions,
	}, logger)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		signer:  signer,
		handler: httpserver.NewHandlers(iss, sessions, photos, logger.With("module", "http")),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpserver.NewRouter(app.handler, app.logger)
	s := httpserver.NewServer(app.config.HTTPAddr, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives, then
// releases the database and the storage client.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage_backend", app.config.StorageBackend, "bucket", app.config.StorageBucket)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if c, ok := app.signer.(io.Closer); ok {
		if err := c.Close(); err != nil {
			app.logger.Warn(ctx, "storage close", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
	app.logger.Info(context.Background(), "Stopped")
}
