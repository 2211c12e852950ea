package services

import (
	"github.com/travelnest/backend/internal/models"
	"gorm.io/gorm"
)

// CreateNotification inserts a notification row using tx, which is expected
// to be the same transaction as the state change the notification derives
// from, so neither can land without the other.
func CreateNotification(tx *gorm.DB, userID uint, title, message, notifType string) (*models.Notification, error) {
	n := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}
	if err := tx.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// PushNotification delivers an already-persisted notification to the user's
// personal channel. Called after the owning transaction commits.
func PushNotification(hub *Hub, n *models.Notification) {
	if hub == nil || n == nil {
		return
	}
	hub.EmitToUser(n.UserID, Event{Type: "notification", Data: n})
}
