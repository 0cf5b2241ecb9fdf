package types

import "time"

// Rows are written by the ingestion process; this service only reads through
// them when joining people to their companies.
type CompanyPersonAssociation struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID int64     `gorm:"column:company_id;not null;index" json:"company_id"`
	PersonID  int64     `gorm:"column:person_id;not null;index" json:"person_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (CompanyPersonAssociation) TableName() string { return "company_person_association" }
