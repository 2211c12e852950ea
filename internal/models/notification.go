package models

import "gorm.io/gorm"

// Notification types emitted by the booking workflow and admin broadcast.
const (
	NotificationNewRequest       = "new_request"
	NotificationRequestAccepted  = "request_accepted"
	NotificationRequestRejected  = "request_rejected"
	NotificationCheckoutRequest  = "checkout_request"
	NotificationCheckoutVerified = "checkout_verified"
	NotificationBroadcast        = "broadcast"
)

type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"column:user_id;not null;index" json:"userId"`
	User    *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title   string `gorm:"column:title;not null" json:"title"`
	Message string `gorm:"column:message;not null" json:"message"`
	Type    string `gorm:"column:type;not null" json:"type"`
	IsRead  bool   `gorm:"column:is_read;default:false" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}
