package types

import "time"

// EntityID points at company.id or person.id depending on EntityType. The
// store carries no foreign key across the polymorphic boundary; membership
// writes validate the discriminator against the backing table in the same
// transaction.
type ListEntityAssociation struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ListID     int64     `gorm:"column:list_id;not null;index" json:"list_id"`
	EntityID   int64     `gorm:"column:entity_id;not null;index" json:"entity_id"`
	EntityType string    `gorm:"column:entity_type;size:50;not null" json:"entity_type"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (ListEntityAssociation) TableName() string { return "list_entity_association" }
