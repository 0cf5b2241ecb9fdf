package types

import (
	"time"

	"gorm.io/datatypes"
)

type Signal struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SourceID         *int64         `gorm:"column:source_id;index" json:"source_id"`
	SourceData       datatypes.JSON `gorm:"column:source_data;type:jsonb" json:"source_data"`
	Name             string         `gorm:"column:name" json:"name"`
	NerTags          datatypes.JSON `gorm:"column:ner_tags;type:jsonb" json:"ner_tags"`
	SourceCompanyIDs datatypes.JSON `gorm:"column:source_company_ids;type:jsonb" json:"source_company_ids"`
	SourcePeopleIDs  datatypes.JSON `gorm:"column:source_people_ids;type:jsonb" json:"source_people_ids"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Signal) TableName() string { return "signal" }
