package handlers_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelnest/backend/internal/models"
)

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":    "new@example.com",
		"password": "password123",
		"name":     "Alice",
		"role":     "traveler",
	})
	requireStatus(t, w, 201)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, dataField(t, w, "token"))

	// Password hash must never leave the server
	assert.NotContains(t, w.Body.String(), "password")

	var user models.User
	require.NoError(t, s.db.Where("email = ?", "new@example.com").First(&user).Error)
	assert.Equal(t, models.RoleTraveler, user.Role)
	assert.Equal(t, models.AccountActive, user.AccountStatus)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	existing := s.createUser(t, models.RoleTraveler)

	w := s.do(t, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":    existing.Email,
		"password": "password123",
		"name":     "Copycat",
		"role":     "traveler",
	})
	requireStatus(t, w, 400)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":    "sneaky@example.com",
		"password": "password123",
		"name":     "Sneaky",
		"role":     "admin",
	})
	requireStatus(t, w, 400)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleHost)

	w := s.do(t, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	})
	requireStatus(t, w, 200)
	assert.NotEmpty(t, dataField(t, w, "token"))
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleTraveler)

	w := s.do(t, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "nope-nope-nope",
	})
	requireStatus(t, w, 401)
}

func TestLoginBannedAccount(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleTraveler)
	require.NoError(t, s.db.Model(user).Update("account_status", models.AccountBanned).Error)

	w := s.do(t, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	})
	requireStatus(t, w, 403)
	assert.True(t, strings.Contains(w.Body.String(), "not active"))
}

func TestLoginSuspendedAccount(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleHost)
	require.NoError(t, s.db.Model(user).Update("account_status", models.AccountSuspended).Error)

	w := s.do(t, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "password123",
	})
	requireStatus(t, w, 403)
}

func TestGetMe(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, models.RoleTraveler)

	w := s.do(t, "GET", "/api/auth/me", s.token(t, user), nil)
	requireStatus(t, w, 200)
	assert.Contains(t, w.Body.String(), user.Email)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/api/user/profile", "", nil)
	requireStatus(t, w, 401)

	w = s.do(t, "GET", "/api/user/profile", "not-a-token", nil)
	requireStatus(t, w, 401)
}

func TestRoleGate(t *testing.T) {
	s := newTestServer(t)
	traveler := s.createUser(t, models.RoleTraveler)

	w := s.do(t, "GET", "/api/host/requests", s.token(t, traveler), nil)
	requireStatus(t, w, 403)
}
