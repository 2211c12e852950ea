package models

import "gorm.io/gorm"

// ActivityLog is an append-only audit row recorded for every API call, read
// back only by admin tooling. UserID is nil for unauthenticated requests.
type ActivityLog struct {
	gorm.Model
	UserID    *uint  `gorm:"column:user_id;index" json:"userId"`
	User      *User  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Action    string `gorm:"column:action;not null" json:"action"`
	Details   string `gorm:"column:details" json:"details"`
	IPAddress string `gorm:"column:ip_address" json:"ipAddress"`
	UserAgent string `gorm:"column:user_agent" json:"userAgent"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
