package types

import (
	"time"

	"gorm.io/datatypes"
)

// A company row is ingested from exactly one Search or Signal. Multiple rows
// may share the same SourceCompanyID (re-ingested duplicates); they are never
// merged in storage, only collapsed at read time by the repo layer.
type Company struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	SearchID        *int64         `gorm:"column:search_id;index" json:"search_id"`
	SignalID        *int64         `gorm:"column:signal_id;index" json:"signal_id"`
	SourceCompanyID *int64         `gorm:"column:source_company_id;index" json:"source_company_id"`
	Type            string         `gorm:"column:type" json:"type"`
	Name            string         `gorm:"column:name" json:"name"`
	NameAliases     datatypes.JSON `gorm:"column:name_aliases;type:jsonb" json:"name_aliases"`
	LegalName       string         `gorm:"column:legal_name" json:"legal_name"`
	Description     string         `gorm:"column:description" json:"description"`
	Contact         datatypes.JSON `gorm:"column:contact;type:jsonb" json:"contact"`
	FoundingDate    datatypes.JSON `gorm:"column:founding_date;type:jsonb" json:"founding_date"`
	WebsiteURLs     datatypes.JSON `gorm:"column:website_urls;type:jsonb" json:"website_urls"`
	LogoURL         string         `gorm:"column:logo_url" json:"logo_url"`
	OwnershipStatus string         `gorm:"column:ownership_status" json:"ownership_status"`
	Location        datatypes.JSON `gorm:"column:location;type:jsonb" json:"location"`
	Tags            datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	Socials         datatypes.JSON `gorm:"column:socials;type:jsonb" json:"socials"`
	Comments        string         `gorm:"column:comments" json:"comments"`
	RelevenceStage  string         `gorm:"column:relevence_stage" json:"relevence_stage"`
	IsHidden        *bool          `gorm:"column:is_hidden;default:false" json:"is_hidden"`
	Rank            *float64       `gorm:"column:rank" json:"rank"`
	RelatedCompanies datatypes.JSON `gorm:"column:related_companies;type:jsonb" json:"related_companies"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Company) TableName() string { return "company" }
