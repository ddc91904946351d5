// Package server assembles the application: it opens the document store,
// runs migrations, builds the services and serves them over HTTP until the
// process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fincaforms/fincaforms/internal/dbx"
	"github.com/fincaforms/fincaforms/internal/logging"
	"github.com/fincaforms/fincaforms/internal/server/config"
	"github.com/fincaforms/fincaforms/internal/server/repositories/repomanager"
	"github.com/fincaforms/fincaforms/internal/server/rest"
	"github.com/fincaforms/fincaforms/internal/server/services"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

const connectTimeout = 10 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	accountService *services.AccountService
	schemaService  *services.SchemaService
	formService    *services.FormService
}

// pgConnConfig parses dsn and injects the store credential.
func pgConnConfig(dsn, password string) (*pgx.ConnConfig, error) {
	cc, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database dsn: %w", err)
	}
	cc.Password = password
	return cc, nil
}

// openDB is a seam for tests.
var openDB = func(ctx context.Context, dsn, password string) (*sql.DB, error) {
	cc, err := pgConnConfig(dsn, password)
	if err != nil {
		return nil, err
	}

	db := stdlib.OpenDB(*cc)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db connect error: %w", err)
	}
	return db, nil
}

// NewApp validates c and prepares the store and the services. It fails
// when the configuration is incomplete, most notably when the store
// credential is missing.
func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	ctx := context.Background()

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	switch c.Storage {
	case config.StorageMemory:
		rm = repomanager.NewMemoryRepositoryManager()
		logger.Warn(ctx, "using in-memory storage, data is lost on exit")
	default:
		db, err = openDB(ctx, c.DatabaseDSN, c.DatabasePassword)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		accountService: services.NewAccountService(db, rm),
		schemaService:  services.NewSchemaService(db, rm),
		formService:    services.NewFormService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) handler() *rest.Server {
	var store dbx.Pinger
	if app.db != nil {
		store = app.db
	}

	r := rest.NewRouter(app.logger, app.config.CORSAllowedOrigins,
		rest.NewAccountHandler(app.accountService, app.logger),
		rest.NewSchemaHandler(app.schemaService, app.logger),
		rest.NewFormHandler(app.formService, app.logger),
		rest.NewHealthHandler(store, app.logger),
	)
	return rest.NewServer(app.config.EndpointAddrHTTP, r, app.logger, app.config.ShutdownTimeout)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.handler().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store handle.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "error closing store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")

	return runErr
}

// Close releases the store handle. It is safe to call more than once.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	err := app.db.Close()
	app.db = nil
	return err
}
