package handlers_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelnest/backend/internal/models"
)

func TestUpdateProfile(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleTraveler)
	token := s.token(t, user)

	w := s.do(t, "PUT", "/api/user/profile", token, map[string]interface{}{
		"name":  "  New Name  ",
		"phone": "+351123456789",
	})
	requireStatus(t, w, 200)

	require.NoError(t, s.db.First(user, user.ID).Error)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "+351123456789", user.Phone)

	w = s.do(t, "PUT", "/api/user/profile", token, map[string]interface{}{"name": "   "})
	requireStatus(t, w, 400)
}

func TestUpdatePassword(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleTraveler)
	token := s.token(t, user)

	w := s.do(t, "PUT", "/api/user/password", token, map[string]interface{}{
		"currentPassword": "wrong-password",
		"newPassword":     "brand-new-pass",
	})
	requireStatus(t, w, 400)

	w = s.do(t, "PUT", "/api/user/password", token, map[string]interface{}{
		"currentPassword": "password123",
		"newPassword":     "brand-new-pass",
	})
	requireStatus(t, w, 200)

	require.NoError(t, s.db.First(user, user.ID).Error)
	assert.NoError(t, user.CheckPassword("brand-new-pass"))
}

func TestNotificationReadFlow(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleTraveler)
	token := s.token(t, user)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.db.Create(&models.Notification{
			UserID:  user.ID,
			Title:   "Test",
			Message: fmt.Sprintf("notification %d", i),
			Type:    models.NotificationBroadcast,
		}).Error)
	}

	w := s.do(t, "GET", "/api/user/notifications", token, nil)
	requireStatus(t, w, 200)
	notifications, ok := dataField(t, w, "notifications").([]interface{})
	require.True(t, ok)
	assert.Len(t, notifications, 3)

	w = s.do(t, "GET", "/api/user/notifications/unread-count", token, nil)
	requireStatus(t, w, 200)
	assert.EqualValues(t, 3, dataField(t, w, "count"))

	var first models.Notification
	require.NoError(t, s.db.Where("user_id = ?", user.ID).First(&first).Error)

	w = s.do(t, "PUT", fmt.Sprintf("/api/user/notifications/%d/read", first.ID), token, nil)
	requireStatus(t, w, 200)

	w = s.do(t, "GET", "/api/user/notifications/unread-count", token, nil)
	assert.EqualValues(t, 2, dataField(t, w, "count"))

	w = s.do(t, "POST", "/api/user/notifications/read-all", token, nil)
	requireStatus(t, w, 200)

	w = s.do(t, "GET", "/api/user/notifications/unread-count", token, nil)
	assert.EqualValues(t, 0, dataField(t, w, "count"))
}

func TestNotificationOwnership(t *testing.T) {
	s := newTestServer(t)
	owner := s.createUser(t, models.RoleTraveler)
	other := s.createUser(t, models.RoleTraveler)

	n := models.Notification{UserID: owner.ID, Title: "Private", Message: "m", Type: models.NotificationBroadcast}
	require.NoError(t, s.db.Create(&n).Error)

	w := s.do(t, "PUT", fmt.Sprintf("/api/user/notifications/%d/read", n.ID), s.token(t, other), nil)
	requireStatus(t, w, 404)
}
