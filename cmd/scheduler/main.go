package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/krishimarga/mandi-indexer/internal/adapter"
	"github.com/krishimarga/mandi-indexer/internal/config"
	"github.com/krishimarga/mandi-indexer/internal/ingest"
	"github.com/krishimarga/mandi-indexer/internal/logger"
	"github.com/krishimarga/mandi-indexer/internal/masterdata"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
	"github.com/krishimarga/mandi-indexer/internal/store"
	"github.com/krishimarga/mandi-indexer/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRunnerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "scheduler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Mandi Indexer scheduler")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Initialize store and pipelines
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
	synchronizer := masterdata.NewSynchronizer(dataStore, client, clock, cfg.Seed.SourceStates)

	// Schedule the jobs. SkipIfStillRunning keeps a slow ingestion run from
	// stacking up behind itself.
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Default()))
	scheduler := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	_, err = scheduler.AddFunc(cfg.Scheduler.IngestSpec, func() {
		result, err := orchestrator.Run(ctx, nil)
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("job", "ingest"), zap.String("run_id", result.RunID))
			return
		}
		logger.InfoCtx(ctx, "Scheduled ingestion finished",
			zap.String("run_id", result.RunID),
			zap.Int("fetched", result.Fetched),
			zap.Int64("written", result.Written),
			zap.Int("failed_targets", result.FailedTargets),
		)
	})
	if err != nil {
		logger.FatalCtx(ctx, "Invalid ingest schedule", zap.String("spec", cfg.Scheduler.IngestSpec), zap.Error(err))
	}

	_, err = scheduler.AddFunc(cfg.Scheduler.SyncSpec, func() {
		if err := synchronizer.Sync(ctx); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("job", "sync"))
		}
	})
	if err != nil {
		logger.FatalCtx(ctx, "Invalid sync schedule", zap.String("spec", cfg.Scheduler.SyncSpec), zap.Error(err))
	}

	scheduler.Start()
	logger.InfoCtx(ctx, "Scheduler started",
		zap.String("ingest_spec", cfg.Scheduler.IngestSpec),
		zap.String("sync_spec", cfg.Scheduler.SyncSpec),
	)

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))

	// Stop accepting new runs, let the in-flight one finish
	stopCtx := scheduler.Stop()

	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("Timed out waiting for running jobs")
	}

	logger.Info("Scheduler stopped")
}
