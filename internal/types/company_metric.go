package types

import (
	"time"

	"gorm.io/datatypes"
)

type CompanyMetric struct {
	ID                 int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID          int64          `gorm:"column:company_id;index" json:"company_id"`
	Stage              string         `gorm:"column:stage" json:"stage"`
	Headcount          *int64         `gorm:"column:headcount" json:"headcount"`
	TractionMetrics    datatypes.JSON `gorm:"column:traction_metrics;type:jsonb" json:"traction_metrics"`
	Funding            datatypes.JSON `gorm:"column:funding;type:jsonb" json:"funding"`
	Employees          datatypes.JSON `gorm:"column:employees;type:jsonb" json:"employees"`
	EmployeeHighlights datatypes.JSON `gorm:"column:employee_highlights;type:jsonb" json:"employee_highlights"`
	Highlights         datatypes.JSON `gorm:"column:highlights;type:jsonb" json:"highlights"`
	InvestorURN        string         `gorm:"column:investor_urn" json:"investor_urn"`
	FundingRounds      datatypes.JSON `gorm:"column:funding_rounds;type:jsonb" json:"funding_rounds"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (CompanyMetric) TableName() string { return "company_metric" }
