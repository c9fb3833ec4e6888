// Package server assembles the gophwallet server: storage, services and the
// HTTP and gRPC endpoints, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"github.com/dmitrijs2005/gophwallet/internal/server/config"
	"github.com/dmitrijs2005/gophwallet/internal/server/events"
	"github.com/dmitrijs2005/gophwallet/internal/server/httpapi"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
	"github.com/dmitrijs2005/gophwallet/internal/server/telemetry"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gophwallet/internal/server/grpc"
)

const serviceName = "gophwallet"

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	publisher       events.Publisher
	userService     *services.UserService
	guard           *auth.Guard
	shutdownTracing func(context.Context) error
}

// NewApp connects to PostgreSQL, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, m repomanager.RepositoryManager) (*App, error) {

	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	issuer, err := auth.NewIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Setup(ctx, serviceName, c.OtelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("tracing init error: %w", err)
	}

	publisher := events.Connect(ctx, c.RabbitMQURL, c.EventsExchange, logger)

	us := services.NewUserService(db, m, issuer, services.NewAccountProvisioner(m), publisher, logger)

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		publisher:       publisher,
		userService:     us,
		guard:           auth.NewGuard(issuer),
		shutdownTracing: shutdown,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) runHTTPServer(ctx context.Context) error {

	h := httpapi.NewHandler(app.userService, app.logger)
	router := httpapi.NewRouter(h, app.guard, app.logger, app.config.CORSAllowedOrigins)

	return httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger).Run(ctx)
}

func (app *App) runGRPCServer(ctx context.Context) error {
	return gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.guard).Run(ctx)
}

// Run serves until ctx is cancelled, a signal arrives or an endpoint fails,
// then releases the database, the broker connection and the tracer.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return app.runHTTPServer(gctx) })

	if app.config.EndpointAddrGRPC != "" {
		g.Go(func() error { return app.runGRPCServer(gctx) })
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	app.close(context.WithoutCancel(ctx))

	return err
}

func (app *App) close(ctx context.Context) {
	app.publisher.Close()

	if err := app.shutdownTracing(ctx); err != nil {
		app.logger.Warn(ctx, "tracer shutdown failed", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
