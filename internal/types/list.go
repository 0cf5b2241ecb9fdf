package types

import "time"

const (
	ListTypeCompany = "company"
	ListTypePerson  = "person"
)

type List struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;index" json:"name"`
	Type      string    `gorm:"column:type;index" json:"type"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (List) TableName() string { return "list" }
