package types

import (
	"time"

	"gorm.io/datatypes"
)

type Person struct {
	ID                            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName                     string         `gorm:"column:first_name" json:"first_name"`
	LastName                      string         `gorm:"column:last_name" json:"last_name"`
	ProfilePictureURL             string         `gorm:"column:profile_picture_url" json:"profile_picture_url"`
	Contact                       datatypes.JSON `gorm:"column:contact;type:jsonb" json:"contact"`
	Location                      datatypes.JSON `gorm:"column:location;type:jsonb" json:"location"`
	Education                     datatypes.JSON `gorm:"column:education;type:jsonb" json:"education"`
	Socials                       datatypes.JSON `gorm:"column:socials;type:jsonb" json:"socials"`
	Experience                    datatypes.JSON `gorm:"column:experience;type:jsonb" json:"experience"`
	Highlights                    datatypes.JSON `gorm:"column:highlights;type:jsonb" json:"highlights"`
	LinkedinHeadline              string         `gorm:"column:linkedin_headline" json:"linkedin_headline"`
	SourcePersonID                *int64         `gorm:"column:source_person_id;index" json:"source_person_id"`
	SearchID                      *int64         `gorm:"column:search_id;index" json:"search_id"`
	SignalID                      *int64         `gorm:"column:signal_id;index" json:"signal_id"`
	Awards                        datatypes.JSON `gorm:"column:awards;type:jsonb" json:"awards"`
	Recommendations               datatypes.JSON `gorm:"column:recommendations;type:jsonb" json:"recommendations"`
	CurrentCompanyURNs            datatypes.JSON `gorm:"column:current_company_urns;type:jsonb" json:"current_company_urns"`
	LinkedinProfileVisibilityType string         `gorm:"column:linkedin_profile_visibility_type" json:"linkedin_profile_visibility_type"`
	Comments                      string         `gorm:"column:comments" json:"comments"`
	RelevenceStage                string         `gorm:"column:relevence_stage" json:"relevence_stage"`
	IsHidden                      *bool          `gorm:"column:is_hidden;default:false" json:"is_hidden"`
	LastRefreshedAt               *time.Time     `gorm:"column:last_refreshed_at" json:"last_refreshed_at"`
	LastCheckedAt                 *time.Time     `gorm:"column:last_checked_at" json:"last_checked_at"`
	CreatedAt                     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt                     time.Time      `json:"updated_at"`
}

func (Person) TableName() string { return "person" }
