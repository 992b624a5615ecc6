// Package server initializes and runs the Brainly application: it opens the
// database and optional Redis cache, wires services, and runs the HTTP API
// and the gRPC health server until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/brainly/internal/logging"
	"github.com/dmitrijs2005/brainly/internal/server/auth"
	"github.com/dmitrijs2005/brainly/internal/server/cache"
	"github.com/dmitrijs2005/brainly/internal/server/config"
	"github.com/dmitrijs2005/brainly/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/brainly/internal/server/rest"
	"github.com/dmitrijs2005/brainly/internal/server/services"

	gs "github.com/dmitrijs2005/brainly/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	cache  *cache.RedisCache
	http   *rest.Server
	health *gs.HealthServer
}

// NewApp opens backing stores, applies migrations and builds both servers.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(logging.Options{Level: c.LogLevel, Format: c.LogFormat})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	hasher, err := auth.NewHasher(c.BcryptCost)
	if err != nil {
		db.Close()
		return nil, err
	}
	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{
		AccessSecret:  c.AccessTokenSecret,
		AccessExpiry:  c.AccessTokenExpiry,
		RefreshSecret: c.RefreshTokenSecret,
		RefreshExpiry: c.RefreshTokenExpiry,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	app := &App{config: c, logger: logger, db: db}

	deps := rest.Deps{
		Tokens: tokens,
		DB:     rest.PingFunc(db.PingContext),
	}

	var revoker auth.Revoker = auth.NopRevoker{}
	if c.RevocationEnabled() {
		app.cache = cache.NewRedisCache(cache.Config{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}, logger)
		revoker = auth.NewRevocationStore(app.cache, "")
		deps.Cache = app.cache
		logger.Info(ctx, "token revocation enabled", "redis", c.RedisAddr)
	}
	deps.Revoker = revoker

	deps.Users = services.NewUserService(db, rm, hasher, tokens, revoker, logger)
	deps.Contents = services.NewContentService(db, rm)
	deps.Shares = services.NewShareService(db, rm, logger)
	if c.ExportEnabled() {
		deps.Exports = services.NewExportService(db, rm, c)
		logger.Info(ctx, "content export enabled", "bucket", c.S3Bucket)
	}

	app.http = rest.NewServer(rest.Options{
		Addr:               c.HTTPAddr,
		CORSOrigin:         c.CORSOrigin,
		CookieSecure:       c.CookieSecure,
		AccessTokenExpiry:  c.AccessTokenExpiry,
		RefreshTokenExpiry: c.RefreshTokenExpiry,
	}, deps, logger)

	if c.GRPCAddr != "" {
		app.health = gs.NewHealthServer(c.GRPCAddr, rest.PingFunc(db.PingContext), logger)
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runServer runs one server and cancels the whole app if it fails.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) close(ctx context.Context) {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Warn(ctx, "redis close failed", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err)
	}
}

// Run blocks until a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "config", app.config.String())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.http.Run)
	}()

	if app.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runServer(ctx, cancelFunc, "grpc", app.health.Run)
		}()
	}

	wg.Wait()
	app.close(context.Background())
	app.logger.Info(context.Background(), "App stopped")
}
