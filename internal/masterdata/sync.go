package masterdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/krishimarga/mandi-indexer/internal/adapter"
	"github.com/krishimarga/mandi-indexer/internal/domain"
	"github.com/krishimarga/mandi-indexer/internal/logger"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
	"github.com/krishimarga/mandi-indexer/internal/store"
	"github.com/krishimarga/mandi-indexer/internal/store/schema"
)

// seedPageLimit is how many records to scan per source state when seeding
// the commodity catalog
const seedPageLimit = 2000

// Synchronizer rebuilds the derived lookup structures (location hierarchy,
// commodity varieties) from whatever price data is currently in the store.
// It runs on its own cadence, decoupled from ingestion.
type Synchronizer struct {
	store  store.Store
	client datagov.Client
	clock  adapter.Clock
	// sourceStates are scanned when seeding the commodity catalog; a handful
	// of large states is enough to cover nearly every traded commodity.
	sourceStates []string
}

// NewSynchronizer creates a new master-data synchronizer
func NewSynchronizer(st store.Store, client datagov.Client, clock adapter.Clock, sourceStates []string) *Synchronizer {
	return &Synchronizer{
		store:        st,
		client:       client,
		clock:        clock,
		sourceStates: sourceStates,
	}
}

// Sync runs both aggregation passes. Any failure aborts the run and leaves
// the previously derived state untouched: the location replace is a single
// transaction and variety upserts are per-commodity row writes.
func (s *Synchronizer) Sync(ctx context.Context) error {
	if err := s.syncLocations(ctx); err != nil {
		return fmt.Errorf("location sync: %w", err)
	}

	if err := s.syncVarieties(ctx); err != nil {
		return fmt.Errorf("variety sync: %w", err)
	}

	return nil
}

// syncLocations rebuilds the whole state → district → market hierarchy
func (s *Synchronizer) syncLocations(ctx context.Context) error {
	aggregates, err := s.store.AggregateLocations(ctx)
	if err != nil {
		return err
	}

	locations, err := BuildLocationIndex(aggregates)
	if err != nil {
		return err
	}

	if err := s.store.ReplaceLocations(ctx, locations); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Location index rebuilt", zap.Int("states", len(locations)))
	return nil
}

// syncVarieties overwrites each commodity's derived variety set. Commodities
// absent from current price data keep their prior row, and curated metadata
// is never touched.
func (s *Synchronizer) syncVarieties(ctx context.Context) error {
	aggregates, err := s.store.AggregateVarieties(ctx)
	if err != nil {
		return err
	}

	for _, agg := range aggregates {
		varieties := append([]string(nil), agg.Varieties...)
		sort.Strings(varieties)

		if err := s.store.UpsertCommodityVarieties(ctx, agg.Commodity, varieties); err != nil {
			return fmt.Errorf("commodity %q: %w", agg.Commodity, err)
		}
	}

	logger.InfoCtx(ctx, "Commodity varieties synced", zap.Int("commodities", len(aggregates)))
	return nil
}

// BuildLocationIndex groups (state, district, markets) aggregates into one
// location row per state, districts ordered alphabetically by name and
// market sets sorted.
func BuildLocationIndex(aggregates []store.LocationAggregate) ([]schema.Location, error) {
	byState := make(map[string][]domain.District)
	for _, agg := range aggregates {
		markets := append([]string(nil), agg.Markets...)
		sort.Strings(markets)
		byState[agg.State] = append(byState[agg.State], domain.District{
			Name:    agg.District,
			Markets: markets,
		})
	}

	locations := make([]schema.Location, 0, len(byState))
	for state, districts := range byState {
		sort.Slice(districts, func(i, j int) bool {
			return districts[i].Name < districts[j].Name
		})

		encoded, err := json.Marshal(districts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode districts for %s: %w", state, err)
		}

		locations = append(locations, schema.Location{
			State:     state,
			Districts: datatypes.JSON(encoded),
		})
	}

	// Deterministic insert order; readers sort again anyway
	sort.Slice(locations, func(i, j int) bool {
		return locations[i].State < locations[j].State
	})

	return locations, nil
}

// SeedCommodities scans yesterday's data for each configured source state
// and inserts commodity names missing from the catalog. A failed state scan
// is logged and skipped; the remaining states still contribute.
func (s *Synchronizer) SeedCommodities(ctx context.Context) (int64, error) {
	date := s.clock.Now().AddDate(0, 0, -1)

	seen := make(map[string]bool)
	for _, state := range s.sourceStates {
		records, err := s.client.FetchPage(ctx, datagov.Filters{Date: date, State: state}, 0, seedPageLimit)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping seed source state",
				zap.String("state", state),
				zap.Error(err),
			)
			continue
		}

		for _, record := range records {
			name := strings.TrimSpace(record.Commodity)
			if name != "" {
				seen[name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	inserted, err := s.store.SeedCommodityNames(ctx, names)
	if err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "Commodity catalog seeded",
		zap.Int("scanned", len(names)),
		zap.Int64("inserted", inserted),
	)

	return inserted, nil
}
