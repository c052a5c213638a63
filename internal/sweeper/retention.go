package sweeper

import (
	"context"

	"go.uber.org/zap"

	"github.com/krishimarga/mandi-indexer/internal/adapter"
	"github.com/krishimarga/mandi-indexer/internal/domain"
	"github.com/krishimarga/mandi-indexer/internal/logger"
	"github.com/krishimarga/mandi-indexer/internal/store"
)

// DefaultHorizonDays is the rolling retention window for price rows
const DefaultHorizonDays = 30

// Retention deletes price rows whose arrival date has fallen out of the
// rolling window. It has no dependency on what was just ingested and is safe
// to run on its own.
type Retention struct {
	store       store.Store
	clock       adapter.Clock
	horizonDays int
}

// NewRetention creates a new retention sweeper. A non-positive horizon falls
// back to DefaultHorizonDays.
func NewRetention(st store.Store, clock adapter.Clock, horizonDays int) *Retention {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &Retention{
		store:       st,
		clock:       clock,
		horizonDays: horizonDays,
	}
}

// Name returns the sweeper's name for logging and identification
func (r *Retention) Name() string {
	return "retention"
}

// Sweep deletes all price rows strictly older than now − horizon and returns
// the number of rows deleted. Rows exactly on the cutoff date survive.
func (r *Retention) Sweep(ctx context.Context) (int64, error) {
	cutoff := domain.Date(r.clock.Now()).AddDate(0, 0, -r.horizonDays)

	deleted, err := r.store.DeletePricesBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "Retention sweep finished",
		zap.String("sweeper", r.Name()),
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted", deleted),
	)

	return deleted, nil
}
