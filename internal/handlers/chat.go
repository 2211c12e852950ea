package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/travelnest/backend/internal/models"
	"github.com/travelnest/backend/internal/services"
	"gorm.io/gorm"
)

type SendMessageInput struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// SendMessage is the HTTP path for sending a chat message. It shares the
// validation and fan-out pipeline with the websocket send_message event.
func SendMessage(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input SendMessageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}

		msg, err := services.SendChatMessage(db, hub, userID, input.ReceiverID, input.Message)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrChatReceiverNotFound):
				c.JSON(404, gin.H{"success": false, "message": "Receiver not found"})
			case errors.Is(err, services.ErrChatForbidden):
				c.JSON(403, gin.H{"success": false, "message": err.Error()})
			case errors.Is(err, services.ErrChatMessageInvalid):
				c.JSON(400, gin.H{"success": false, "message": err.Error()})
			default:
				c.JSON(500, gin.H{"success": false, "message": "Failed to send message"})
			}
			return
		}

		c.JSON(201, gin.H{
			"success": true,
			"message": "Message sent",
			"data":    gin.H{"chat": msg},
		})
	}
}

// GetConversations folds the caller's chat history into one entry per
// counterpart with the latest message, unread count and presence flag.
func GetConversations(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var messages []models.ChatMessage
		err := db.Preload("Sender").Preload("Receiver").
			Where("sender_id = ? OR receiver_id = ?", userID, userID).
			Order("created_at DESC").
			Find(&messages).Error
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch conversations"})
			return
		}

		_, unreadBySender, err := services.UnreadCounts(db, userID)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch unread counts"})
			return
		}

		type conversation struct {
			UserID      uint                `json:"userId"`
			Name        string              `json:"name"`
			Avatar      string              `json:"avatar"`
			Role        models.UserRole     `json:"role"`
			LastMessage *models.ChatMessage `json:"lastMessage"`
			UnreadCount int64               `json:"unreadCount"`
			Online      bool                `json:"online"`
		}

		seen := make(map[uint]bool)
		conversations := make([]*conversation, 0)
		for i := range messages {
			msg := &messages[i]
			counterpartID := msg.SenderID
			counterpart := msg.Sender
			if counterpartID == userID {
				counterpartID = msg.ReceiverID
				counterpart = msg.Receiver
			}
			if seen[counterpartID] {
				continue
			}
			seen[counterpartID] = true

			conv := &conversation{
				UserID:      counterpartID,
				LastMessage: msg,
				UnreadCount: unreadBySender[counterpartID],
				Online:      services.IsUserOnline(c.Request.Context(), rdb, counterpartID),
			}
			if counterpart != nil {
				conv.Name = counterpart.Name
				conv.Avatar = counterpart.Avatar
				conv.Role = counterpart.Role
			}
			conversations = append(conversations, conv)
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"conversations": conversations}})
	}
}

// GetConversation returns message history with one user and marks their
// messages as read.
func GetConversation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		otherID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid user id"})
			return
		}

		limit := 50
		if l := c.Query("limit"); l != "" {
			if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}

		var messages []models.ChatMessage
		err = db.Preload("Sender").
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userID, otherID, otherID, userID).
			Order("created_at DESC").
			Limit(limit).
			Find(&messages).Error
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch messages"})
			return
		}

		// Oldest first for rendering
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}

		if _, err := services.MarkConversationRead(db, uint(otherID), userID); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to mark messages read"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"messages": messages}})
	}
}

// MarkConversationRead marks all messages from the given user as read.
func MarkConversationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		otherID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": "Invalid user id"})
			return
		}

		count, err := services.MarkConversationRead(db, uint(otherID), userID)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to mark messages read"})
			return
		}

		c.JSON(200, gin.H{"success": true, "data": gin.H{"marked": count}})
	}
}

// GetUnreadMessageCount returns the total unread message count plus the
// per-sender breakdown.
func GetUnreadMessageCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		total, bySender, err := services.UnreadCounts(db, userID)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to fetch unread count"})
			return
		}

		c.JSON(200, gin.H{
			"success": true,
			"data":    gin.H{"total": total, "bySender": bySender},
		})
	}
}
