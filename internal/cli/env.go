package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/ironlog/internal/adapter/api"
	"github.com/heartmarshall/ironlog/internal/adapter/sqlite"
	"github.com/heartmarshall/ironlog/internal/app"
	"github.com/heartmarshall/ironlog/internal/config"
	"github.com/heartmarshall/ironlog/internal/connectivity"
	"github.com/heartmarshall/ironlog/internal/draft"
	"github.com/heartmarshall/ironlog/internal/offlinequeue"
)

// clientEnv is everything a command needs, opened from the client config.
type clientEnv struct {
	cfg    *config.ClientConfig
	log    *slog.Logger
	clock  clockwork.Clock
	kv     *sqlite.Store
	drafts *draft.Store
	queue  *offlinequeue.Queue
	api    *api.Client
}

func openEnv(opts *RootOptions, stderr io.Writer) (*clientEnv, error) {
	cfg, err := config.LoadClientFrom(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	if !opts.Verbose {
		logCfg.Level = "error"
	}
	logger := app.NewLoggerTo(stderr, logCfg).With("service", "ironlog")

	clock := clockwork.NewRealClock()
	kv, err := sqlite.Open(cfg.Client.StorePath, clock)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	return &clientEnv{
		cfg:    cfg,
		log:    logger,
		clock:  clock,
		kv:     kv,
		drafts: draft.NewStore(logger, kv, clock),
		queue:  offlinequeue.New(logger, kv, clock),
		api:    api.NewClient(cfg.Client.ServerURL, cfg.Client.AccessToken, cfg.Client.RequestTimeout, logger),
	}, nil
}

func (e *clientEnv) Close() error {
	return e.kv.Close()
}

// monitor returns a connectivity monitor seeded by one liveness probe.
func (e *clientEnv) monitor(ctx context.Context) *connectivity.Monitor {
	return connectivity.New(e.probe(ctx))
}

func (e *clientEnv) probe(ctx context.Context) bool {
	if err := e.api.Probe(ctx); err != nil {
		e.log.DebugContext(ctx, "server unreachable", slog.String("error", err.Error()))
		return false
	}
	return true
}
