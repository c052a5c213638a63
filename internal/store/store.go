package store

import (
	"context"
	"time"

	"github.com/krishimarga/mandi-indexer/internal/store/schema"
)

// PriceFilter holds the filters for price queries. Text filters are matched
// case-insensitively as substrings; date bounds are inclusive calendar dates.
type PriceFilter struct {
	State     string
	District  string
	Market    string
	Commodity string
	Variety   string
	From      *time.Time
	To        *time.Time
	Limit     int
}

// LocationAggregate is one (state, district) group with its distinct markets,
// produced by aggregating the prices table.
type LocationAggregate struct {
	State    string
	District string
	Markets  []string
}

// VarietyAggregate is one commodity group with its distinct varieties,
// produced by aggregating the prices table.
type VarietyAggregate struct {
	Commodity string
	Varieties []string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// UpsertPrices bulk-writes normalized price records keyed on the natural
	// key (market, commodity, variety, arrival_date). Existing rows get their
	// price fields and fetched_at overwritten; new rows are inserted. Returns
	// the number of rows written.
	UpsertPrices(ctx context.Context, prices []schema.Price) (int64, error)
	// DeletePricesBefore deletes price rows whose arrival_date is strictly
	// older than cutoff. Returns the number of rows deleted.
	DeletePricesBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// QueryPrices returns price rows matching the filter, newest arrival first
	QueryPrices(ctx context.Context, filter PriceFilter) ([]schema.Price, error)

	// DistinctDistricts returns all distinct district names, sorted
	DistinctDistricts(ctx context.Context) ([]string, error)
	// DistinctCommodities returns distinct commodity names, sorted, optionally
	// scoped to a district (substring match)
	DistinctCommodities(ctx context.Context, district string) ([]string, error)
	// DistinctVarieties returns distinct variety names, sorted, optionally
	// scoped to a district and commodity (substring match)
	DistinctVarieties(ctx context.Context, district, commodity string) ([]string, error)

	// AggregateLocations groups the prices table by (state, district) and
	// collects the distinct markets per group, markets sorted
	AggregateLocations(ctx context.Context) ([]LocationAggregate, error)
	// ReplaceLocations atomically replaces the whole location index
	// (delete-all then bulk insert in one transaction)
	ReplaceLocations(ctx context.Context, locations []schema.Location) error
	// ListStates returns the distinct states present in the location index, sorted
	ListStates(ctx context.Context) ([]string, error)
	// GetLocationByState returns the location entry for a state, or
	// domain.ErrStateNotFound if absent
	GetLocationByState(ctx context.Context, state string) (*schema.Location, error)

	// AggregateVarieties groups the prices table by commodity and collects
	// the distinct varieties per group, sorted
	AggregateVarieties(ctx context.Context) ([]VarietyAggregate, error)
	// UpsertCommodityVarieties upserts a commodity by name, writing only its
	// varieties; curated fields (category, popular, image) are untouched
	UpsertCommodityVarieties(ctx context.Context, commodity string, varieties []string) error
	// SeedCommodityNames inserts commodity names that are not yet in the
	// catalog with the default category; existing rows are left untouched.
	// Returns the number of rows inserted.
	SeedCommodityNames(ctx context.Context, names []string) (int64, error)
	// ListCommodities returns the full commodity catalog sorted by name
	ListCommodities(ctx context.Context) ([]schema.Commodity, error)
}
