package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/krishimarga/mandi-indexer/internal/adapter"
	"github.com/krishimarga/mandi-indexer/internal/config"
	"github.com/krishimarga/mandi-indexer/internal/ingest"
	"github.com/krishimarga/mandi-indexer/internal/logger"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
	"github.com/krishimarga/mandi-indexer/internal/store"
	"github.com/krishimarga/mandi-indexer/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	dateFlag   = flag.String("date", "", "Single date to ingest (YYYY-MM-DD); default is yesterday and today")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIngesterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Cancel the run on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ingest",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Mandi Indexer ingestion")

	// Resolve the date window
	var dates []time.Time
	if *dateFlag != "" {
		date, err := time.Parse(time.DateOnly, *dateFlag)
		if err != nil {
			logger.FatalCtx(ctx, "Invalid -date value", zap.String("date", *dateFlag), zap.Error(err))
		}
		dates = []time.Time{date}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Initialize store and pipeline
	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Source.HTTPTimeout)
	client := datagov.NewClient(httpClient, cfg.Source.BaseURL, cfg.Source.ResourceID, cfg.Source.APIKey)
	normalizer := ingest.NewNormalizer(clock)
	retention := sweeper.NewRetention(dataStore, clock, cfg.Ingest.HorizonDays)

	orchestrator := ingest.NewOrchestrator(client, dataStore, normalizer, retention, clock, ingest.Config{
		States:    cfg.Ingest.States,
		PageLimit: cfg.Source.PageLimit,
	})

	result, err := orchestrator.Run(ctx, dates)
	if err != nil {
		logger.FatalCtx(ctx, "Ingestion run failed", zap.Error(err), zap.String("run_id", result.RunID))
	}

	logger.InfoCtx(ctx, "Ingestion run finished",
		zap.String("run_id", result.RunID),
		zap.Int("fetched", result.Fetched),
		zap.Int64("written", result.Written),
		zap.Int("dropped", result.Dropped),
		zap.Int("failed_targets", result.FailedTargets),
		zap.Int64("deleted", result.Deleted),
	)

	if result.FailedTargets > 0 {
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}
