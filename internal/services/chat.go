package services

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/travelnest/backend/internal/models"
	"github.com/travelnest/backend/pkg/utils"
	"gorm.io/gorm"
)

const maxChatMessageLen = 2000

var (
	// ErrChatForbidden means no accepted stay request links the two users.
	ErrChatForbidden = errors.New("chat is only available between users with an accepted stay")
	// ErrChatMessageInvalid means the message is empty or too long after
	// sanitization.
	ErrChatMessageInvalid = errors.New("message must be between 1 and 2000 characters")
	// ErrChatReceiverNotFound means the receiver user id does not exist.
	ErrChatReceiverNotFound = errors.New("receiver not found")
)

func chatErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrChatForbidden),
		errors.Is(err, ErrChatMessageInvalid),
		errors.Is(err, ErrChatReceiverNotFound):
		return err.Error()
	}
	return "Failed to send message"
}

// ChatAllowed reports whether an accepted stay request links the two users
// in either traveler/host direction.
func ChatAllowed(db *gorm.DB, userA, userB uint) (bool, error) {
	var count int64
	err := db.Model(&models.StayRequest{}).
		Joins("JOIN hosts ON hosts.id = requests.host_id").
		Where("requests.status = ?", models.RequestStatusAccepted).
		Where("(requests.traveler_id = ? AND hosts.user_id = ?) OR (requests.traveler_id = ? AND hosts.user_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SendChatMessage validates, persists and fans out one chat message. The
// row is written before any delivery; delivery itself is best-effort and
// offline parties re-fetch history on reconnect. A nil hub skips fan-out.
func SendChatMessage(db *gorm.DB, hub *Hub, senderID, receiverID uint, text string) (*models.ChatMessage, error) {
	text = utils.SanitizeText(text)
	if n := utf8.RuneCountInString(text); n == 0 || n > maxChatMessageLen {
		return nil, ErrChatMessageInvalid
	}

	var receiver models.User
	if err := db.First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatReceiverNotFound
		}
		return nil, err
	}

	allowed, err := ChatAllowed(db, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrChatForbidden
	}

	msg := models.ChatMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, err
	}

	if hub != nil {
		newMessage := Event{Type: "new_message", Data: msg}
		// Room delivery covers parties with the conversation open; the
		// personal channels cover the sender's other tabs and a receiver
		// who has not joined the room yet.
		hub.EmitToRoom(ConversationRoom(senderID, receiverID), newMessage)
		hub.EmitToUser(senderID, newMessage)
		hub.EmitToUser(receiverID, newMessage)
		hub.EmitToUser(receiverID, Event{
			Type: "message_notification",
			Data: map[string]interface{}{
				"senderId":  senderID,
				"message":   msg.Message,
				"timestamp": msg.CreatedAt.Format(time.RFC3339),
			},
		})
	}

	return &msg, nil
}

// MarkConversationRead marks every unread message from senderID to readerID
// as read and returns how many were affected.
func MarkConversationRead(db *gorm.DB, senderID, readerID uint) (int64, error) {
	result := db.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, readerID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// UnreadCounts returns the total unread message count for a user and the
// per-sender breakdown used for badge rendering.
func UnreadCounts(db *gorm.DB, userID uint) (int64, map[uint]int64, error) {
	var rows []struct {
		SenderID uint
		Count    int64
	}
	err := db.Model(&models.ChatMessage{}).
		Select("sender_id, COUNT(*) as count").
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return 0, nil, err
	}

	var total int64
	bySender := make(map[uint]int64, len(rows))
	for _, row := range rows {
		bySender[row.SenderID] = row.Count
		total += row.Count
	}
	return total, bySender, nil
}
