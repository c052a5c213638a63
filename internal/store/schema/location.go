package schema

import (
	"gorm.io/datatypes"
)

// Location represents the locations table - the derived per-state hierarchy
// of districts and their markets. It is rebuilt wholesale by each master-data
// sync run and never patched incrementally, so Districts always reflects one
// consistent aggregation pass.
type Location struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// State is the state name, unique per row
	State string `gorm:"column:state;not null;uniqueIndex;type:text"`
	// Districts is a JSON array of domain.District ordered alphabetically by name
	Districts datatypes.JSON `gorm:"column:districts;not null"`
}

// TableName specifies the table name for the Location model
func (Location) TableName() string {
	return "locations"
}
