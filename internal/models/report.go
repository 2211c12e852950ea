package models

import "gorm.io/gorm"

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

// Report is a user-filed abuse report, reviewed through the admin surface.
type Report struct {
	gorm.Model
	ReporterID  uint         `gorm:"column:reporter_id;not null" json:"reporterId"`
	Reporter    *User        `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"reporter,omitempty"`
	ReportedID  uint         `gorm:"column:reported_id;not null" json:"reportedId"`
	Reported    *User        `gorm:"foreignKey:ReportedID;constraint:OnDelete:CASCADE" json:"reported,omitempty"`
	Reason      string       `gorm:"column:reason;not null" json:"reason"`
	Description string       `gorm:"column:description" json:"description"`
	Status      ReportStatus `gorm:"column:status;default:pending" json:"status"`
}

func (Report) TableName() string {
	return "reports"
}
