// Package app assembles the ironlog HTTP API from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/ironlog/internal/adapter/postgres"
	"github.com/heartmarshall/ironlog/internal/adapter/postgres/routine"
	"github.com/heartmarshall/ironlog/internal/adapter/postgres/workout"
	"github.com/heartmarshall/ironlog/internal/auth"
	"github.com/heartmarshall/ironlog/internal/config"
	workoutsvc "github.com/heartmarshall/ironlog/internal/service/workout"
	"github.com/heartmarshall/ironlog/internal/transport/middleware"
	"github.com/heartmarshall/ironlog/internal/transport/rest"
)

const rateLimiterCleanup = 5 * time.Minute

// Run loads configuration, connects to PostgreSQL, applies migrations when
// enabled, and serves the HTTP API until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting ironlog server",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()

	limiter := middleware.NewRateLimiter(clock, rateLimiterCleanup)
	defer limiter.Stop()

	handler := NewHandler(cfg, logger, Deps{
		DB:       pool,
		Workouts: workout.New(pool),
		Routines: routine.New(pool),
		Tx:       postgres.NewTxManager(pool),
		Clock:    clock,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// Deps are the collaborators NewHandler wires together.
type Deps struct {
	DB       interface{ Ping(ctx context.Context) error }
	Workouts *workout.Repo
	Routines *routine.Repo
	Tx       *postgres.TxManager
	Clock    clockwork.Clock
	Limiter  *middleware.RateLimiter
}

// NewHandler builds the full middleware-wrapped HTTP handler.
func NewHandler(cfg *config.Config, logger *slog.Logger, d Deps) http.Handler {
	jwt := auth.NewJWTManagerWithClock(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, d.Clock)
	svc := workoutsvc.NewService(logger, d.Workouts, d.Routines, d.Tx, d.Clock)

	routes := rest.Routes{
		Health:  rest.NewHealthHandler(d.DB, BuildVersion(), d.Clock),
		Workout: rest.NewWorkoutHandler(svc, logger),
	}
	if d.Limiter != nil {
		routes.WriteLimit = d.Limiter.Limit(cfg.Server.WriteRateLimit)
	}

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwt),
	)(rest.NewRouter(routes))
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
