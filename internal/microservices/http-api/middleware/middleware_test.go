package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"mediaminder/internal/logger"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*service.AuthResult, error) {
	args := m.Called(username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthMiddleware(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("ValidateToken", "good").Return(&service.Claims{UserID: 7, Username: "alice"}, nil)
	mockAuthService.On("ValidateToken", "old").Return(nil, service.ErrExpiredToken)
	mockAuthService.On("ValidateToken", "bad").Return(nil, service.ErrInvalidToken)
	mockAuthService.On("ValidateToken", "broken").Return(nil, errors.New("unexpected"))

	router := setupRouter()
	router.GET("/me", AuthMiddleware(mockAuthService), func(c *gin.Context) {
		id, ok := UserID(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "username": c.GetString(ContextUsername)})
	})

	tests := []struct {
		name   string
		header string
		status int
		err    string
	}{
		{"no header", "", http.StatusUnauthorized, "missing token"},
		{"no bearer prefix", "good", http.StatusUnauthorized, "invalid token"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "invalid token"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "invalid token"},
		{"extra fields", "Bearer good extra", http.StatusUnauthorized, "invalid token"},
		{"expired", "Bearer old", http.StatusUnauthorized, "token expired"},
		{"invalid", "Bearer bad", http.StatusUnauthorized, "invalid token"},
		{"unclassified failure", "Bearer broken", http.StatusUnauthorized, "invalid token"},
		{"valid", "Bearer good", http.StatusOK, ""},
		{"lowercase scheme", "bearer good", http.StatusOK, ""},
		{"uppercase scheme", "BEARER good", http.StatusOK, ""},
		{"repeated spaces", "Bearer   good", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.err != "" {
				assert.Equal(t, tt.err, errorBody(t, w))
			} else {
				assert.JSONEq(t, `{"user_id":7,"username":"alice"}`, w.Body.String())
			}
		})
	}
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	router := setupRouter()
	router.POST("/auth/login", RateLimit(NewIPLimiter(0.001, 3), logger.Discard()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 200, 429, 429}, codes)

	// another client has its own bucket
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIPLimiter_EvictsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPLimiter(1, 2)
	l.now = func() time.Time { return now }
	l.lastSweep = now
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := l.Allow(ctx, "10.0.0."+strconv.Itoa(i))
		require.NoError(t, err)
	}
	assert.Len(t, l.limiters, 3)

	// the refill time is 2s, so idle buckets live for the one minute floor
	now = now.Add(30 * time.Second)
	_, _ = l.Allow(ctx, "10.0.0.0")
	assert.Len(t, l.limiters, 3)

	now = now.Add(45 * time.Second)
	ok, err := l.Allow(ctx, "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, l.limiters, 2)
	assert.Contains(t, l.limiters, "10.0.0.0")
	assert.Contains(t, l.limiters, "10.0.0.9")
}

func TestIPLimiter_EvictionKeepsSpentBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPLimiter(0.001, 1)
	l.now = func() time.Time { return now }
	l.lastSweep = now
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "10.0.0.1")
	require.True(t, ok)

	// well past the one minute floor but short of the 1000s refill
	now = now.Add(10 * time.Minute)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)
	assert.Len(t, l.limiters, 1)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	router := setupRouter()
	router.GET("/", RateLimit(failingLimiter{}, logger.Discard()), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	router := setupRouter()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	router.ServeHTTP(w, req)
	assert.Equal(t, "client-id", w.Header().Get(RequestIDHeader))
}

func TestLogger(t *testing.T) {
	var buf strings.Builder
	log, err := logger.NewWithOutput("info", "json", &buf)
	require.NoError(t, err)

	router := setupRouter()
	router.Use(RequestID(), Logger(log))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/missing", nil)
	router.ServeHTTP(w, req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "/missing", entry["path"])
	assert.Equal(t, float64(404), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	router := setupRouter()
	router.Use(m.Middleware())
	router.GET("/media/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/media/"+string(rune('1'+i)), nil)
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/media/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}
