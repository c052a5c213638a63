package schema

import (
	"gorm.io/datatypes"
)

// Commodity represents the commodities table - the curated commodity catalog.
// Varieties is derived (overwritten on every master-data sync); Category,
// Popular and Image are hand-curated metadata that syncs must leave alone.
type Commodity struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Name is the commodity name, unique per row
	Name string `gorm:"column:name;not null;uniqueIndex;type:text"`
	// Category groups commodities for the dashboard ("Other" until curated)
	Category string `gorm:"column:category;not null;default:'Other';type:text"`
	// Image is an optional image reference
	Image *string `gorm:"column:image;type:text"`
	// Popular marks commodities pinned on the dashboard landing view
	Popular bool `gorm:"column:popular;not null;default:false"`
	// Varieties is a sorted JSON array of variety names seen in price data
	Varieties datatypes.JSON `gorm:"column:varieties;not null;default:'[]'"`
}

// TableName specifies the table name for the Commodity model
func (Commodity) TableName() string {
	return "commodities"
}
