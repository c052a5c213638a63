package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/krishimarga/mandi-indexer/internal/domain"
	"github.com/krishimarga/mandi-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		normalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// normalizeConnectionPoolSettings applies defaults and clamps pool settings.
// database/sql treats MaxOpenConns=0 as "unlimited" and MaxIdleConns=0 as
// "no idle connections", neither of which is a useful default here.
func normalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays
// under PostgreSQL's 65535-parameter limit for the extended protocol, with
// headroom for ON CONFLICT parameters and GORM bookkeeping.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// escapeLike escapes LIKE/ILIKE metacharacters in a user-supplied filter
// value so it only matches literally. Commodity names routinely contain
// characters like "(", ")" and "/" which are harmless in LIKE patterns, but
// "%", "_" and the escape character itself must not act as wildcards.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// containsPattern wraps an escaped filter value for substring matching
func containsPattern(s string) string {
	return "%" + escapeLike(s) + "%"
}

// naturalKey identifies one market session quote within an upsert batch
type naturalKey struct {
	market      string
	commodity   string
	variety     string
	arrivalDate time.Time
}

// dedupeByNaturalKey collapses records sharing a natural key to the last
// occurrence. Upstream pages can repeat a row, and a multi-row INSERT may
// not touch the same row twice under ON CONFLICT DO UPDATE.
func dedupeByNaturalKey(prices []schema.Price) []schema.Price {
	deduped := make([]schema.Price, 0, len(prices))
	seen := make(map[naturalKey]int, len(prices))
	for _, price := range prices {
		key := naturalKey{
			market:      price.Market,
			commodity:   price.Commodity,
			variety:     price.Variety,
			arrivalDate: domain.Date(price.ArrivalDate),
		}
		if i, ok := seen[key]; ok {
			deduped[i] = price
			continue
		}
		seen[key] = len(deduped)
		deduped = append(deduped, price)
	}

	return deduped
}

// UpsertPrices bulk-writes normalized price records keyed on the natural key
func (s *pgStore) UpsertPrices(ctx context.Context, prices []schema.Price) (int64, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	prices = dedupeByNaturalKey(prices)

	// 10 bound parameters per row: all columns except the generated id
	batchSize := calculateSafeBatchSize(len(prices), 10)

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "market"}, {Name: "commodity"}, {Name: "variety"}, {Name: "arrival_date"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"state", "district", "min_price", "max_price", "modal_price", "fetched_at",
		}),
	}).CreateInBatches(prices, batchSize)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to upsert prices: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// DeletePricesBefore deletes price rows older than the cutoff calendar date.
// The cutoff is bound as a plain date string: a time.Time parameter would
// reach the server as timestamptz and get cast through the session TimeZone,
// shifting the boundary by a day on non-UTC servers.
func (s *pgStore) DeletePricesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("arrival_date < ?", domain.Date(cutoff).Format(time.DateOnly)).
		Delete(&schema.Price{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete old prices: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// QueryPrices returns price rows matching the filter, newest arrival first
func (s *pgStore) QueryPrices(ctx context.Context, filter PriceFilter) ([]schema.Price, error) {
	query := s.db.WithContext(ctx).Model(&schema.Price{})

	if filter.State != "" {
		query = query.Where("state ILIKE ?", containsPattern(filter.State))
	}
	if filter.District != "" {
		query = query.Where("district ILIKE ?", containsPattern(filter.District))
	}
	if filter.Market != "" {
		query = query.Where("market ILIKE ?", containsPattern(filter.Market))
	}
	if filter.Commodity != "" {
		query = query.Where("commodity ILIKE ?", containsPattern(filter.Commodity))
	}
	if filter.Variety != "" {
		query = query.Where("variety ILIKE ?", containsPattern(filter.Variety))
	}
	// Date bounds are bound as plain date strings, same as DeletePricesBefore
	if filter.From != nil {
		query = query.Where("arrival_date >= ?", domain.Date(*filter.From).Format(time.DateOnly))
	}
	if filter.To != nil {
		query = query.Where("arrival_date <= ?", domain.Date(*filter.To).Format(time.DateOnly))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var prices []schema.Price
	err := query.Order("arrival_date DESC").Limit(limit).Find(&prices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}

	return prices, nil
}

// DistinctDistricts returns all distinct district names, sorted
func (s *pgStore) DistinctDistricts(ctx context.Context) ([]string, error) {
	var districts []string
	err := s.db.WithContext(ctx).Model(&schema.Price{}).
		Distinct("district").
		Order("district ASC").
		Pluck("district", &districts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct districts: %w", err)
	}

	return districts, nil
}

// DistinctCommodities returns distinct commodity names, sorted, optionally scoped to a district
func (s *pgStore) DistinctCommodities(ctx context.Context, district string) ([]string, error) {
	query := s.db.WithContext(ctx).Model(&schema.Price{})
	if district != "" {
		query = query.Where("district ILIKE ?", containsPattern(district))
	}

	var commodities []string
	err := query.Distinct("commodity").
		Order("commodity ASC").
		Pluck("commodity", &commodities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct commodities: %w", err)
	}

	return commodities, nil
}

// DistinctVarieties returns distinct variety names, sorted, optionally scoped
// to a district and commodity
func (s *pgStore) DistinctVarieties(ctx context.Context, district, commodity string) ([]string, error) {
	query := s.db.WithContext(ctx).Model(&schema.Price{})
	if district != "" {
		query = query.Where("district ILIKE ?", containsPattern(district))
	}
	if commodity != "" {
		query = query.Where("commodity ILIKE ?", containsPattern(commodity))
	}

	var varieties []string
	err := query.Distinct("variety").
		Order("variety ASC").
		Pluck("variety", &varieties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct varieties: %w", err)
	}

	return varieties, nil
}

// AggregateLocations groups the prices table by (state, district) and
// collects the distinct markets per group
func (s *pgStore) AggregateLocations(ctx context.Context) ([]LocationAggregate, error) {
	type row struct {
		State    string         `gorm:"column:state"`
		District string         `gorm:"column:district"`
		Markets  datatypes.JSON `gorm:"column:markets"`
	}

	var rows []row
	err := s.db.WithContext(ctx).Raw(`
		SELECT state, district, json_agg(DISTINCT market) AS markets
		FROM prices
		GROUP BY state, district
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate locations: %w", err)
	}

	aggregates := make([]LocationAggregate, 0, len(rows))
	for _, r := range rows {
		var markets []string
		if err := json.Unmarshal(r.Markets, &markets); err != nil {
			return nil, fmt.Errorf("failed to decode markets for %s/%s: %w", r.State, r.District, err)
		}
		aggregates = append(aggregates, LocationAggregate{
			State:    r.State,
			District: r.District,
			Markets:  markets,
		})
	}

	return aggregates, nil
}

// ReplaceLocations atomically replaces the whole location index. The
// delete and insert run in one transaction so readers never observe an
// empty or half-built index.
func (s *pgStore) ReplaceLocations(ctx context.Context, locations []schema.Location) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&schema.Location{}).Error; err != nil {
			return fmt.Errorf("failed to clear location index: %w", err)
		}

		if len(locations) == 0 {
			return nil
		}

		batchSize := calculateSafeBatchSize(len(locations), 2)
		if err := tx.CreateInBatches(locations, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert location index: %w", err)
		}

		return nil
	})
}

// ListStates returns the distinct states present in the location index, sorted
func (s *pgStore) ListStates(ctx context.Context) ([]string, error) {
	var states []string
	err := s.db.WithContext(ctx).Model(&schema.Location{}).
		Order("state ASC").
		Pluck("state", &states).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}

	return states, nil
}

// GetLocationByState returns the location entry for a state
func (s *pgStore) GetLocationByState(ctx context.Context, state string) (*schema.Location, error) {
	var location schema.Location
	err := s.db.WithContext(ctx).Where("state = ?", state).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &location, nil
}

// AggregateVarieties groups the prices table by commodity and collects the
// distinct varieties per group
func (s *pgStore) AggregateVarieties(ctx context.Context) ([]VarietyAggregate, error) {
	type row struct {
		Commodity string         `gorm:"column:commodity"`
		Varieties datatypes.JSON `gorm:"column:varieties"`
	}

	var rows []row
	err := s.db.WithContext(ctx).Raw(`
		SELECT commodity, json_agg(DISTINCT variety) AS varieties
		FROM prices
		GROUP BY commodity
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate varieties: %w", err)
	}

	aggregates := make([]VarietyAggregate, 0, len(rows))
	for _, r := range rows {
		var varieties []string
		if err := json.Unmarshal(r.Varieties, &varieties); err != nil {
			return nil, fmt.Errorf("failed to decode varieties for %s: %w", r.Commodity, err)
		}
		aggregates = append(aggregates, VarietyAggregate{
			Commodity: r.Commodity,
			Varieties: varieties,
		})
	}

	return aggregates, nil
}

// UpsertCommodityVarieties upserts a commodity by name, writing only its
// varieties column so curated metadata survives
func (s *pgStore) UpsertCommodityVarieties(ctx context.Context, commodity string, varieties []string) error {
	if varieties == nil {
		varieties = []string{}
	}
	encoded, err := json.Marshal(varieties)
	if err != nil {
		return fmt.Errorf("failed to encode varieties: %w", err)
	}

	row := schema.Commodity{
		Name:      commodity,
		Varieties: datatypes.JSON(encoded),
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"varieties"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert commodity varieties: %w", err)
	}

	return nil
}

// SeedCommodityNames inserts unseen commodity names with the default category
func (s *pgStore) SeedCommodityNames(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	rows := make([]schema.Commodity, 0, len(names))
	for _, name := range names {
		rows = append(rows, schema.Commodity{
			Name:      name,
			Category:  "Other",
			Varieties: datatypes.JSON("[]"),
		})
	}

	batchSize := calculateSafeBatchSize(len(rows), 5)
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).CreateInBatches(rows, batchSize)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to seed commodities: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// ListCommodities returns the full commodity catalog sorted by name
func (s *pgStore) ListCommodities(ctx context.Context) ([]schema.Commodity, error) {
	var commodities []schema.Commodity
	err := s.db.WithContext(ctx).Order("name ASC").Find(&commodities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list commodities: %w", err)
	}

	return commodities, nil
}
