package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"sg-cli/internal/adapters/primary/cli"
	"sg-cli/internal/adapters/secondary/feed"
	"sg-cli/internal/adapters/secondary/filesystem"
	"sg-cli/internal/adapters/secondary/postgres"
	"sg-cli/internal/config"
	"sg-cli/internal/core/services"
)

func main() {
	log.SetOutput(os.Stderr)
	log.AddHook(&cli.RunIDHook{RunID: uuid.New().String()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := cli.NewRootCmd(connect)
	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

// connect loads configuration and wires the postgres gateway, the import feed
// and the export writer into the metadata service.
func connect(ctx context.Context) (cli.MetadataUseCase, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	initLogger(cfg)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("database connection established")

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports)
	metadataRepo := postgres.NewMetadataRepository(pool)
	metadataFeed := feed.NewClient(cfg.Feed.Timeout)
	snapshots := filesystem.NewSnapshotWriter(cfg.Export.Dir, nil)

	// Core Services (Application Layer)
	svc := services.NewMetadataService(metadataRepo, metadataFeed, snapshots)

	return svc, pool.Close, nil
}

func initLogger(cfg *config.Config) {
	// --verbose has already switched to debug level.
	if !log.IsLevelEnabled(log.DebugLevel) {
		level, err := log.ParseLevel(cfg.Logger.Level)
		if err != nil {
			level = log.InfoLevel
		}
		log.SetLevel(level)
	}

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
