package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"mediaminder/internal/microservices/http-api/middleware"
	"mediaminder/internal/microservices/http-api/models"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
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

// MockLibraryService mocks the LibraryService interface
type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) List(ctx context.Context, userID int64) ([]models.UserMedia, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserMedia), args.Error(1)
}

func (m *MockLibraryService) Get(ctx context.Context, userID, itemID int64) (*models.UserMedia, error) {
	args := m.Called(userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMedia), args.Error(1)
}

func (m *MockLibraryService) Add(ctx context.Context, userID int64, in service.AddInput) (*models.UserMedia, error) {
	args := m.Called(userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMedia), args.Error(1)
}

func (m *MockLibraryService) Update(ctx context.Context, userID, itemID int64, in service.UpdateInput) (*models.UserMedia, error) {
	args := m.Called(userID, itemID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMedia), args.Error(1)
}

func (m *MockLibraryService) Delete(ctx context.Context, userID, itemID int64) error {
	return m.Called(userID, itemID).Error(0)
}

// MockProfileService mocks the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, userID int64, in service.ProfileInput) (*models.User, error) {
	args := m.Called(userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) DeleteAccount(ctx context.Context, userID int64) error {
	return m.Called(userID).Error(0)
}

// MockGenreService mocks the GenreService interface
type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) List(ctx context.Context, mediaType string) ([]models.Genre, error) {
	args := m.Called(mediaType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreService) ForMedia(ctx context.Context, mediaID int64) ([]models.Genre, error) {
	args := m.Called(mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for AuthMiddleware in handler tests.
func asUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

func doJSON(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorOf(w *httptest.ResponseRecorder) string {
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	msg, _ := body["error"].(string)
	return msg
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }
