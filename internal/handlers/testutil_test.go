package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/travelnest/backend/internal/config"
	"github.com/travelnest/backend/internal/handlers"
	"github.com/travelnest/backend/internal/models"
	"github.com/travelnest/backend/internal/services"
	"github.com/travelnest/backend/pkg/utils"
	"gorm.io/gorm"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// Check constraints from migrations.go are postgres statements, so the
	// test schema comes from AutoMigrate alone.
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Host{},
		&models.StayRequest{},
		&models.Review{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.Report{},
		&models.ActivityLog{},
	))
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		UploadDir:   t.TempDir(),
		MaxUploadMB: 5,
	}
}

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config
	hub    *services.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	cfg := testConfig(t)

	storage, err := services.NewStorage(cfg)
	require.NoError(t, err)

	hub := services.NewHub(db, nil)

	r := gin.New()
	handlers.RegisterRoutes(r, db, nil, hub, storage, cfg)

	return &testServer{db: db, router: r, cfg: cfg, hub: hub}
}

var userSeq int64

func (s *testServer) createUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()
	n := atomic.AddInt64(&userSeq, 1)
	user := &models.User{
		Email:         fmt.Sprintf("user%d@example.com", n),
		Name:          fmt.Sprintf("User %d", n),
		Role:          role,
		AccountStatus: models.AccountActive,
		KYCStatus:     models.KYCPending,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func (s *testServer) createHostWithListing(t *testing.T) (*models.User, *models.Host) {
	t.Helper()
	user := s.createUser(t, models.RoleHost)
	host := &models.Host{
		UserID:    user.ID,
		Title:     "Seaside Loft",
		City:      "Lisbon",
		Country:   "Portugal",
		MaxGuests: 4,
	}
	require.NoError(t, s.db.Create(host).Error)
	return user, host
}

func (s *testServer) createRequest(t *testing.T, traveler *models.User, host *models.Host, status models.RequestStatus) *models.StayRequest {
	t.Helper()
	req := &models.StayRequest{
		TravelerID: traveler.ID,
		HostID:     host.ID,
		CheckIn:    time.Now().AddDate(0, 0, 7),
		CheckOut:   time.Now().AddDate(0, 0, 10),
		Guests:     2,
		Status:     status,
	}
	require.NoError(t, s.db.Create(req).Error)
	return req
}

func (s *testServer) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user, s.cfg.JWTSecret, s.cfg.JWTExpiry)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func dataField(t *testing.T, w *httptest.ResponseRecorder, key string) interface{} {
	t.Helper()
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data[key]
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
