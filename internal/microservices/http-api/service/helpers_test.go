package service

import (
	"context"
	"testing"
	"time"

	"mediaminder/internal/config"
	"mediaminder/internal/logger"
	"mediaminder/internal/microservices/http-api/models"
	"mediaminder/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-bytes"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: testSecret,
		JWTExpiry: 24 * time.Hour,
	}
}

// MockStore hands out mocked repositories and runs WithTx inline.
type MockStore struct {
	users   *MockUserRepository
	media   *MockMediaRepository
	library *MockUserMediaRepository
}

func newMockStore() *MockStore {
	return &MockStore{
		users:   new(MockUserRepository),
		media:   new(MockMediaRepository),
		library: new(MockUserMediaRepository),
	}
}

func (m *MockStore) Users() repository.UserRepository        { return m.users }
func (m *MockStore) Media() repository.MediaRepository       { return m.media }
func (m *MockStore) Library() repository.UserMediaRepository { return m.library }
func (m *MockStore) Genres() repository.GenreRepository      { return nil }

func (m *MockStore) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(m)
}

func (m *MockStore) Ping(ctx context.Context) error { return nil }

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(id).Error(0)
}

// MockMediaRepository mocks the MediaRepository interface
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) FindByExternal(ctx context.Context, externalID string, mediaType models.MediaType) (*models.Media, error) {
	args := m.Called(externalID, mediaType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaRepository) FindByID(ctx context.Context, id int64) (*models.Media, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *MockMediaRepository) Create(ctx context.Context, media *models.Media) error {
	return m.Called(media).Error(0)
}

// MockUserMediaRepository mocks the UserMediaRepository interface
type MockUserMediaRepository struct {
	mock.Mock
}

func (m *MockUserMediaRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserMedia, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserMedia), args.Error(1)
}

func (m *MockUserMediaRepository) FindOwned(ctx context.Context, userID, id int64) (*models.UserMedia, error) {
	args := m.Called(userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMedia), args.Error(1)
}

func (m *MockUserMediaRepository) FindByUserAndMedia(ctx context.Context, userID, mediaID int64) (*models.UserMedia, error) {
	args := m.Called(userID, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMedia), args.Error(1)
}

func (m *MockUserMediaRepository) Create(ctx context.Context, item *models.UserMedia) error {
	return m.Called(item).Error(0)
}

func (m *MockUserMediaRepository) Update(ctx context.Context, item *models.UserMedia) error {
	return m.Called(item).Error(0)
}

func (m *MockUserMediaRepository) Delete(ctx context.Context, userID, id int64) error {
	return m.Called(userID, id).Error(0)
}

func (m *MockUserMediaRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// services bundles real services over an in-memory store.
type services struct {
	store   *repository.MemoryStore
	auth    AuthService
	catalog CatalogService
	library LibraryService
	profile ProfileService
	genres  GenreService
}

func newServices(t *testing.T) *services {
	t.Helper()
	store := repository.NewMemoryStore()
	log := logger.Discard()
	catalog := NewCatalogService(store, log)
	return &services{
		store:   store,
		auth:    NewAuthService(store, testConfig(), log),
		catalog: catalog,
		library: NewLibraryService(store, catalog, log),
		profile: NewProfileService(store, log),
		genres:  NewGenreService(store),
	}
}

func (s *services) register(t *testing.T, username string) *models.User {
	t.Helper()
	res, err := s.auth.Register(context.Background(), username, username+"@example.com", "password123")
	require.NoError(t, err)
	return res.User
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool { return &v }
