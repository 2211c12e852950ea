package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/travelnest/backend/internal/models"
	"gorm.io/gorm"
)

// GetNotifications lists the caller's notifications, newest first
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 20
		}

		var notifications []models.Notification
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(limit).
			Find(&notifications).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch notifications"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"notifications": notifications}})
	}
}

// MarkNotificationRead marks a single owned notification as read
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		notifID := c.Param("id")

		var notification models.Notification
		if err := db.Where("id = ? AND user_id = ?", notifID, userID).First(&notification).Error; err != nil {
			c.JSON(404, gin.H{"success": false, "message": "Notification not found"})
			return
		}

		if err := db.Model(&notification).Update("is_read", true).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update notification"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "Notification marked as read"})
	}
}

// MarkAllNotificationsRead bulk-marks the caller's notifications read
func MarkAllNotificationsRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		if err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Update("is_read", true).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to update notifications"})
			return
		}

		c.JSON(200, gin.H{"success": true, "message": "All notifications marked as read"})
	}
}

// GetUnreadNotificationCount returns the caller's unread badge count
func GetUnreadNotificationCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var count int64
		if err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Count(&count).Error; err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to count notifications"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"count": count}})
	}
}
