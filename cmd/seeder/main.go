// Command seeder loads routine templates from a YAML file into the database.
//
// Flags:
//
//	--file      path to the routine seed file (required)
//	--user      owner UUID, overrides user_id from the file
//	--dry-run   validate the file without writing to the database
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/ironlog/internal/adapter/postgres"
	"github.com/heartmarshall/ironlog/internal/adapter/postgres/routine"
	"github.com/heartmarshall/ironlog/internal/app"
	"github.com/heartmarshall/ironlog/internal/app/seeder"
	"github.com/heartmarshall/ironlog/internal/config"
)

var _ seeder.RoutineRepo = (*routine.Repo)(nil)

func main() {
	fileFlag := flag.String("file", "", "path to the routine seed file")
	userFlag := flag.String("user", "", "owner UUID (overrides user_id in the file)")
	dryRunFlag := flag.Bool("dry-run", false, "validate without writing to DB")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seedCfg, err := seeder.LoadConfig(*fileFlag)
	if err != nil {
		logger.Error("load seed file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *userFlag != "" {
		seedCfg.UserID = *userFlag
	}
	if *dryRunFlag {
		seedCfg.DryRun = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := seeder.New(logger, routine.New(pool)).Run(ctx, *seedCfg); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
