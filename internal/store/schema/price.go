package schema

import (
	"time"
)

// Price represents the prices table - one market session quote for a
// commodity variety. The composite unique index is the natural key: the
// upstream feed has no surrogate identifier, so re-ingesting a day must
// land on the same row.
type Price struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// State is the reporting state name as published upstream
	State string `gorm:"column:state;not null;type:text;index:idx_prices_state"`
	// District is the reporting district within the state
	District string `gorm:"column:district;not null;type:text;index:idx_prices_district"`
	// Market is the market (mandi) name, part of the natural key
	Market string `gorm:"column:market;not null;type:text;uniqueIndex:idx_prices_natural_key,priority:1"`
	// Commodity is the traded commodity name, part of the natural key
	Commodity string `gorm:"column:commodity;not null;type:text;uniqueIndex:idx_prices_natural_key,priority:2"`
	// Variety is the commodity variety, part of the natural key ("FAQ" when unreported)
	Variety string `gorm:"column:variety;not null;default:'FAQ';type:text;uniqueIndex:idx_prices_natural_key,priority:3"`
	// MinPrice is the session minimum traded price
	MinPrice float64 `gorm:"column:min_price;not null"`
	// MaxPrice is the session maximum traded price
	MaxPrice float64 `gorm:"column:max_price;not null"`
	// ModalPrice is the most frequently traded price of the session
	ModalPrice float64 `gorm:"column:modal_price;not null"`
	// ArrivalDate is the market session calendar date, part of the natural key.
	// Stored as a plain date: day granularity, no time zone component.
	ArrivalDate time.Time `gorm:"column:arrival_date;not null;type:date;serializer:calendardate;uniqueIndex:idx_prices_natural_key,priority:4;index:idx_prices_arrival_date"`
	// FetchedAt records when this row was last written by an ingestion run
	FetchedAt time.Time `gorm:"column:fetched_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Price model
func (Price) TableName() string {
	return "prices"
}
