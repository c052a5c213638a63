package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krishimarga/mandi-indexer/internal/adapter"
	"github.com/krishimarga/mandi-indexer/internal/logger"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
	"github.com/krishimarga/mandi-indexer/internal/store"
	"github.com/krishimarga/mandi-indexer/internal/store/schema"
	"github.com/krishimarga/mandi-indexer/internal/sweeper"
)

// Config holds orchestrator settings
type Config struct {
	// States are the target states to ingest. Empty means one all-India
	// target per date with no state filter.
	States []string
	// PageLimit is the upstream page size
	PageLimit int
}

// Result summarizes one ingestion run
type Result struct {
	RunID         string
	Fetched       int
	Written       int64
	Dropped       int
	FailedTargets int
	Deleted       int64
}

// Orchestrator drives the fetch → normalize → upsert pipeline across a date
// window and a set of target states, then runs the retention sweep once.
// Targets are processed sequentially: the upstream source is rate limited
// and per-batch write ordering stays trivial.
type Orchestrator struct {
	client     datagov.Client
	store      store.Store
	normalizer *Normalizer
	retention  *sweeper.Retention
	clock      adapter.Clock
	config     Config
}

// NewOrchestrator creates a new ingestion orchestrator
func NewOrchestrator(client datagov.Client, st store.Store, normalizer *Normalizer, retention *sweeper.Retention, clock adapter.Clock, cfg Config) *Orchestrator {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 2000
	}
	return &Orchestrator{
		client:     client,
		store:      st,
		normalizer: normalizer,
		retention:  retention,
		clock:      clock,
		config:     cfg,
	}
}

// DefaultWindow returns the rolling ingestion window: yesterday and today.
// Fetching both every run absorbs upstream reporting lag; the natural key
// makes the overlap harmless.
func DefaultWindow(clock adapter.Clock) []time.Time {
	now := clock.Now()
	return []time.Time{now.AddDate(0, 0, -1), now}
}

// Run ingests all targets (dates × states) and sweeps old rows afterwards.
// A failed page abandons the remaining pages of its target only; the run
// carries on with the next target.
func (o *Orchestrator) Run(ctx context.Context, dates []time.Time) (Result, error) {
	result := Result{RunID: uuid.NewString()}

	if len(dates) == 0 {
		dates = DefaultWindow(o.clock)
	}

	states := o.config.States
	if len(states) == 0 {
		// Single all-India target per date
		states = []string{""}
	}

	logger.InfoCtx(ctx, "Starting ingestion run",
		zap.String("run_id", result.RunID),
		zap.Int("dates", len(dates)),
		zap.Int("targets_per_date", len(states)),
	)

	for _, date := range dates {
		for _, state := range states {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			if err := o.ingestTarget(ctx, &result, date, state); err != nil {
				result.FailedTargets++
				logger.WarnCtx(ctx, "Abandoning ingestion target",
					zap.String("run_id", result.RunID),
					zap.String("date", date.Format(time.DateOnly)),
					zap.String("state", state),
					zap.Error(err),
				)
			}
		}
	}

	deleted, err := o.retention.Sweep(ctx)
	if err != nil {
		return result, fmt.Errorf("retention sweep failed: %w", err)
	}
	result.Deleted = deleted

	logger.InfoCtx(ctx, "Ingestion run finished",
		zap.String("run_id", result.RunID),
		zap.Int("fetched", result.Fetched),
		zap.Int64("written", result.Written),
		zap.Int("dropped", result.Dropped),
		zap.Int("failed_targets", result.FailedTargets),
		zap.Int64("deleted", result.Deleted),
	)

	return result, nil
}

// ingestTarget pages through one (date, state) target until a short or empty
// page signals end of data. Each page is normalized and written before the
// next page is requested.
func (o *Orchestrator) ingestTarget(ctx context.Context, result *Result, date time.Time, state string) error {
	filters := datagov.Filters{Date: date, State: state}
	limit := o.config.PageLimit
	offset := 0

	for {
		records, err := o.client.FetchPage(ctx, filters, offset, limit)
		if err != nil {
			return fmt.Errorf("page fetch at offset %d: %w", offset, err)
		}
		if len(records) == 0 {
			return nil
		}

		result.Fetched += len(records)

		written, dropped, err := o.writePage(ctx, records)
		if err != nil {
			return fmt.Errorf("page write at offset %d: %w", offset, err)
		}
		result.Written += written
		result.Dropped += dropped

		logger.DebugCtx(ctx, "Ingested page",
			zap.String("run_id", result.RunID),
			zap.String("date", date.Format(time.DateOnly)),
			zap.String("state", state),
			zap.Int("offset", offset),
			zap.Int("records", len(records)),
			zap.Int("dropped", dropped),
		)

		if len(records) < limit {
			return nil
		}
		offset += limit
	}
}

// writePage normalizes one page and bulk-upserts it. Malformed records are
// dropped with a warning rather than failing the page.
func (o *Orchestrator) writePage(ctx context.Context, records []datagov.RawRecord) (int64, int, error) {
	normalized := make([]schema.Price, 0, len(records))
	dropped := 0

	for _, raw := range records {
		price, err := o.normalizer.Normalize(raw)
		if err != nil {
			dropped++
			logger.WarnCtx(ctx, "Dropping malformed record",
				zap.String("market", raw.Market),
				zap.String("commodity", raw.Commodity),
				zap.Error(err),
			)
			continue
		}
		normalized = append(normalized, price)
	}

	if len(normalized) == 0 {
		return 0, dropped, nil
	}

	written, err := o.store.UpsertPrices(ctx, normalized)
	if err != nil {
		return 0, dropped, err
	}

	return written, dropped, nil
}
