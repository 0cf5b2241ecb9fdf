package types

import (
	"time"

	"gorm.io/datatypes"
)

type Source struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"column:name" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	BaseURL     string         `gorm:"column:base_url" json:"base_url"`
	Channels    datatypes.JSON `gorm:"column:channels;type:jsonb" json:"channels"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Source) TableName() string { return "source" }
