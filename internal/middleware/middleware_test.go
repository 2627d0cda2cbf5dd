package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/lesson-booking/internal/metrics"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c), "username": c.GetString(ContextUsername)})
	})
	return r
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	code, _ := body["error_code"].(string)
	return code
}

func TestAuthMiddleware(t *testing.T) {
	valid := signed(t, testSecret, jwt.MapClaims{
		"sub":      "u-1",
		"username": "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		rec := httptest.NewRecorder()
		protectedRouter().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"u-1","username":"admin"}`, rec.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: valid})
		rec := httptest.NewRecorder()
		protectedRouter().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"missing", "", "missing_credentials"},
		{"wrong scheme", "Basic abc", "invalid_authorization_header"},
		{"wrong secret", "Bearer " + signed(t, "other", jwt.MapClaims{"sub": "u-1"}), "invalid_token"},
		{"expired", "Bearer " + signed(t, testSecret, jwt.MapClaims{"sub": "u-1", "exp": time.Now().Add(-time.Minute).Unix()}), "invalid_token"},
		{"no subject", "Bearer " + signed(t, testSecret, jwt.MapClaims{"username": "admin"}), "invalid_token_payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protectedRouter().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.code, errorCode(t, rec))
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, nil)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.2"))

	now = now.Add(30 * time.Second)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1"))
}

func TestRequestIDAndCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://app.test/"}), RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Body.String())
	assert.Equal(t, rec.Body.String(), rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Body.String())
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/bookings", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `path="/api/bookings"`)
}
