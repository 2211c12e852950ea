package models

import "gorm.io/gorm"

// ChatMessage is a directed message between two users who share an accepted
// stay request. Only the read flag ever changes after creation.
type ChatMessage struct {
	gorm.Model
	SenderID   uint   `gorm:"column:sender_id;not null;index" json:"senderId"`
	Sender     *User  `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	ReceiverID uint   `gorm:"column:receiver_id;not null;index" json:"receiverId"`
	Receiver   *User  `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"receiver,omitempty"`
	Message    string `gorm:"column:message;not null" json:"message"`
	IsRead     bool   `gorm:"column:is_read;default:false" json:"isRead"`
}

func (ChatMessage) TableName() string {
	return "chats"
}
