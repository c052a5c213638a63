package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/krishimarga/mandi-indexer/internal/adapter"
	"github.com/krishimarga/mandi-indexer/internal/config"
	"github.com/krishimarga/mandi-indexer/internal/logger"
	"github.com/krishimarga/mandi-indexer/internal/masterdata"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
	"github.com/krishimarga/mandi-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSyncConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sync",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting master-data sync")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Initialize store and synchronizer
	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Source.HTTPTimeout)
	client := datagov.NewClient(httpClient, cfg.Source.BaseURL, cfg.Source.ResourceID, cfg.Source.APIKey)

	synchronizer := masterdata.NewSynchronizer(dataStore, client, clock, cfg.Seed.SourceStates)

	if err := synchronizer.Sync(ctx); err != nil {
		logger.FatalCtx(ctx, "Master-data sync failed", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Master-data sync finished")
}
