package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/krishimarga/mandi-indexer/internal/adapter"
	"github.com/krishimarga/mandi-indexer/internal/domain"
	"github.com/krishimarga/mandi-indexer/internal/providers/datagov"
	"github.com/krishimarga/mandi-indexer/internal/store/schema"
)

// Normalizer converts raw upstream records into canonical price rows.
// The two shapes are deliberately distinct types: upstream uses capitalized
// field names and string-typed prices, the store uses lowercase columns and
// typed values, and this is the single total mapping between them.
type Normalizer struct {
	clock adapter.Clock
}

// NewNormalizer creates a new record normalizer
func NewNormalizer(clock adapter.Clock) *Normalizer {
	return &Normalizer{clock: clock}
}

// Normalize converts one raw record into a canonical price row. A record
// whose price fields do not parse to finite numbers is rejected; a missing
// arrival date falls back to the current calendar date so an otherwise-valid
// record from a sloppy batch is not dropped.
func (n *Normalizer) Normalize(raw datagov.RawRecord) (schema.Price, error) {
	arrivalDate, err := n.arrivalDate(raw.ArrivalDate)
	if err != nil {
		return schema.Price{}, err
	}

	minPrice, err := parsePrice("Min_Price", raw.MinPrice)
	if err != nil {
		return schema.Price{}, err
	}
	maxPrice, err := parsePrice("Max_Price", raw.MaxPrice)
	if err != nil {
		return schema.Price{}, err
	}
	modalPrice, err := parsePrice("Modal_Price", raw.ModalPrice)
	if err != nil {
		return schema.Price{}, err
	}

	variety := strings.TrimSpace(raw.Variety)
	if variety == "" {
		variety = domain.VarietyFAQ
	}

	return schema.Price{
		State:       strings.TrimSpace(raw.State),
		District:    strings.TrimSpace(raw.District),
		Market:      strings.TrimSpace(raw.Market),
		Commodity:   strings.TrimSpace(raw.Commodity),
		Variety:     variety,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		ModalPrice:  modalPrice,
		ArrivalDate: arrivalDate,
		FetchedAt:   n.clock.Now(),
	}, nil
}

// arrivalDate applies the permissive missing-date policy: absent means today,
// present-but-malformed is a record error.
func (n *Normalizer) arrivalDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.Date(n.clock.Now()), nil
	}
	return domain.ParseArrivalDate(raw)
}

// parsePrice parses a price field, rejecting non-finite values
func parsePrice(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable %s %q: %w", field, raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite %s %q", field, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative %s %q", field, raw)
	}

	return v, nil
}
