// Command server runs the ironlog HTTP API: direct workout saves,
// idempotent replay of offline-queued workouts, and routine lookup.
//
// Configuration is read from CONFIG_PATH (default ./config.yaml) and
// environment variables; see internal/config.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/ironlog/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
