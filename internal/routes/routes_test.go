package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	"github.com/BruksfildServices01/lesson-booking/internal/config"
	"github.com/BruksfildServices01/lesson-booking/internal/infra/memory"
	"github.com/BruksfildServices01/lesson-booking/internal/metrics"
	"github.com/BruksfildServices01/lesson-booking/internal/middleware"
	ucAuth "github.com/BruksfildServices01/lesson-booking/internal/usecase/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
	store  *memory.Store
	audit  *audit.Dispatcher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.New()
	require.NoError(t, ucAuth.EnsureAdmin(context.Background(), store, "admin", "hunter22", nil))

	dispatcher := audit.NewDispatcher(audit.New(store), nil)
	t.Cleanup(dispatcher.Close)

	cfg := &config.Config{
		Env:                config.EnvDevelopment,
		JWT:                config.JWTConfig{Secret: "routes-secret", Expiration: time.Hour},
		App:                config.AppConfig{Timezone: "Europe/Amsterdam", Locale: "en"},
		RateLimitPerMinute: 1000,
	}

	r := gin.New()
	RegisterRoutes(r, Dependencies{
		Windows:  store,
		Bookings: store,
		Settings: store,
		Users:    store,
		AuditLog: store,
		Audit:    dispatcher,
		Metrics:  metrics.New(),
	}, cfg)

	return &testServer{engine: r, store: store, audit: dispatcher}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "hunter22"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}](t, rec)
	require.True(t, body.Success)
	require.NotEmpty(t, body.Token)

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	return body.Token
}

func TestPublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/availability", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/form-settings", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hourlyRate":15`)

	rec = s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/bookings"},
		{http.MethodPost, "/api/availability"},
		{http.MethodDelete, "/api/availability"},
		{http.MethodPatch, "/api/form-settings"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/audit-logs"},
	} {
		rec := s.do(t, tc.method, tc.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
	}

	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_credentials")
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	// Availability far enough ahead that "today" never excludes it.
	day := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	rec := s.do(t, http.MethodPost, "/api/availability", gin.H{
		"date": day, "startTime": "14:00", "endTime": "15:30",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	window := decode[map[string]any](t, rec)
	assert.Equal(t, true, window["enabled"])

	rec = s.do(t, http.MethodGet, "/api/availability/slots?locale=en", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	schedule := decode[struct {
		Days []struct {
			Date  string   `json:"date"`
			Slots []string `json:"slots"`
		} `json:"days"`
	}](t, rec)
	require.Len(t, schedule.Days, 1)
	assert.Equal(t, []string{"14:00-14:30", "14:30-15:00", "15:00-15:30"}, schedule.Days[0].Slots)

	rec = s.do(t, http.MethodPost, "/api/bookings", gin.H{
		"firstName": "Anna",
		"lastName":  "de Vries",
		"contact":   "anna@example.com",
		"subject":   "math",
		"timeSlots": []gin.H{
			{"day": day, "time": "14:00-14:30"},
			{"day": day, "time": "14:30-15:00"},
		},
		"totalCost": 1,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	booking := decode[map[string]any](t, rec)
	assert.EqualValues(t, 60, booking["totalDuration"])
	assert.EqualValues(t, 1500, booking["totalCost"])
	assert.Equal(t, "pending", booking["status"])
	id := booking["id"].(string)

	rec = s.do(t, http.MethodPatch, "/api/bookings/"+id+"/status", gin.H{"status": "confirmed"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)

	rec = s.do(t, http.MethodPatch, "/api/bookings/missing/status", gin.H{"status": "confirmed"}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/bookings", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/bookings/export?format=csv", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "Anna")

	rec = s.do(t, http.MethodDelete, "/api/availability/"+window["id"].(string), nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/availability/"+window["id"].(string), nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Eventually(t, func() bool {
		rec := s.do(t, http.MethodGet, "/api/audit-logs?action=booking_status_updated", nil, token)
		var page struct {
			Total int64 `json:"total"`
		}
		return rec.Code == http.StatusOK &&
			json.Unmarshal(rec.Body.Bytes(), &page) == nil &&
			page.Total == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBookingValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/bookings", gin.H{
		"firstName": "A",
		"lastName":  "de Vries",
		"contact":   "anna@example.com",
		"subject":   "math",
		"timeSlots": []gin.H{{"day": "2026-10-20", "time": "14:00-14:30"}},
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[struct {
		Code   string            `json:"error_code"`
		Fields map[string]string `json:"fields"`
	}](t, rec)
	assert.Equal(t, "validation_failed", body.Code)
	assert.Contains(t, body.Fields, "firstName")

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString("{"))
	raw := httptest.NewRecorder()
	s.engine.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
	assert.Contains(t, raw.Body.String(), "invalid_request")
}

func TestFormSettingsAndMe(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	rec := s.do(t, http.MethodPatch, "/api/form-settings", gin.H{"hourlyRate": 20}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"hourlyRate":20`)

	rec = s.do(t, http.MethodPatch, "/api/form-settings", gin.H{"hourlyRate": 0}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"admin"`)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec = s.do(t, http.MethodPost, "/api/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			assert.Empty(t, c.Value)
			assert.Negative(t, c.MaxAge)
		}
	}
}
