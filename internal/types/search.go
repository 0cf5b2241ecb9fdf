package types

import (
	"time"

	"gorm.io/datatypes"
)

// SourceCompanyIDs/SourcePeopleIDs hold identifiers minted by the origin
// system, not local primary keys.
type Search struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SourceID         *int64         `gorm:"column:source_id;index" json:"source_id"`
	Name             string         `gorm:"column:name" json:"name"`
	SourceCompanyIDs datatypes.JSON `gorm:"column:source_company_ids;type:jsonb" json:"source_company_ids"`
	SourcePeopleIDs  datatypes.JSON `gorm:"column:source_people_ids;type:jsonb" json:"source_people_ids"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Search) TableName() string { return "search" }
