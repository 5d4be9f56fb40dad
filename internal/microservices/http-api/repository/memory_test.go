package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mediaminder/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s Store, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "x", IsPrivate: true}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func TestMemoryStore_UserConstraints(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	assert.Equal(t, int64(1), alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	err := s.Users().Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	constraint, ok := IsDuplicate(err)
	assert.True(t, ok)
	assert.Equal(t, ConstraintUsersUsername, constraint)

	err = s.Users().Create(ctx, &models.User{Username: "other", Email: "alice@example.com"})
	constraint, _ = IsDuplicate(err)
	assert.Equal(t, ConstraintUsersEmail, constraint)

	_, err = s.Users().FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Users().Delete(ctx, 99), ErrNotFound)
}

func TestMemoryStore_MediaUniquePerType(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Media().Create(ctx, &models.Media{ExternalID: "1", Type: models.MediaTypeMovie, Title: "A"}))
	require.NoError(t, s.Media().Create(ctx, &models.Media{ExternalID: "1", Type: models.MediaTypeBook, Title: "A"}))

	err := s.Media().Create(ctx, &models.Media{ExternalID: "1", Type: models.MediaTypeMovie, Title: "B"})
	constraint, ok := IsDuplicate(err)
	assert.True(t, ok)
	assert.Equal(t, ConstraintMediaExternal, constraint)
}

func TestMemoryStore_UserMedia(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	m := &models.Media{ExternalID: "1", Type: models.MediaTypeMovie, Title: "A"}
	require.NoError(t, s.Media().Create(ctx, m))

	item := &models.UserMedia{UserID: alice.ID, MediaID: m.ID, Status: "watching"}
	require.NoError(t, s.Library().Create(ctx, item))

	dup := &models.UserMedia{UserID: alice.ID, MediaID: m.ID, Status: "again"}
	constraint, ok := IsDuplicate(s.Library().Create(ctx, dup))
	assert.True(t, ok)
	assert.Equal(t, ConstraintUserMediaOwner, constraint)

	assert.Error(t, s.Library().Create(ctx, &models.UserMedia{UserID: 42, MediaID: m.ID, Status: "x"}))
	assert.Error(t, s.Library().Create(ctx, &models.UserMedia{UserID: alice.ID, MediaID: 42, Status: "x"}))

	owned, err := s.Library().FindOwned(ctx, alice.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, owned.Media)
	assert.Equal(t, "A", owned.Media.Title)

	_, err = s.Library().FindOwned(ctx, alice.ID+1, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Library().Update(ctx, &models.UserMedia{ID: item.ID, UserID: alice.ID + 1}), ErrNotFound)
}

func TestMemoryStore_DeleteUserCascades(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	m := &models.Media{ExternalID: "1", Type: models.MediaTypeMovie, Title: "A"}
	require.NoError(t, s.Media().Create(ctx, m))
	require.NoError(t, s.Library().Create(ctx, &models.UserMedia{UserID: alice.ID, MediaID: m.ID, Status: "x"}))

	require.NoError(t, s.Users().Delete(ctx, alice.ID))

	items, err := s.Library().ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	_, err = s.Media().FindByID(ctx, m.ID)
	assert.NoError(t, err)
}

// dropMedia deletes a media row without cascading, leaving dangling
// user_media rows behind.
func dropMedia(s *MemoryStore, mediaID int64) {
	_ = s.do(func(d *memoryData) error {
		delete(d.media, mediaID)
		return nil
	})
}

func TestMemoryStore_DroppedMediaLeavesNilSnapshot(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	m := &models.Media{ExternalID: "1", Type: models.MediaTypeMovie, Title: "A"}
	require.NoError(t, s.Media().Create(ctx, m))
	require.NoError(t, s.Library().Create(ctx, &models.UserMedia{UserID: alice.ID, MediaID: m.ID, Status: "x"}))

	dropMedia(s, m.ID)

	items, err := s.Library().ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Media)
}

func TestMemoryStore_WithTxRollsBack(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx Store) error {
		seedUser(t, tx, "alice")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Users().FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx Store) error {
		seedUser(t, tx, "bob")
		return nil
	}))
	_, err = s.Users().FindByUsername(ctx, "bob")
	assert.NoError(t, err)
}

func TestMemoryStore_NestedTxIsSavepoint(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.WithTx(ctx, func(tx Store) error {
		seedUser(t, tx, "alice")
		inner := tx.WithTx(ctx, func(sp Store) error {
			seedUser(t, sp, "bob")
			return errors.New("inner failure")
		})
		assert.Error(t, inner)
		return nil
	}))

	_, err := s.Users().FindByUsername(ctx, "alice")
	assert.NoError(t, err)
	_, err = s.Users().FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ConcurrentCreates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.WithTx(ctx, func(tx Store) error {
				if _, err := tx.Media().FindByExternal(ctx, "1", models.MediaTypeMovie); err == nil {
					return nil
				}
				return tx.Media().Create(ctx, &models.Media{ExternalID: "1", Type: models.MediaTypeMovie, Title: "A"})
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	m, err := s.Media().FindByExternal(ctx, "1", models.MediaTypeMovie)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
}

func TestMemoryStore_Genres(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	book := "book"
	list, err := s.Genres().List(ctx, &book)
	require.NoError(t, err)
	names := []string{}
	for _, g := range list {
		names = append(names, g.Name)
	}
	assert.Contains(t, names, "Poetry")
	assert.Contains(t, names, "Action")
	assert.NotContains(t, names, "Documentary")
	assert.Equal(t, "Action", names[0])

	assert.Error(t, s.AttachGenre(99, 1))
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.WithTx(ctx, func(tx Store) error { return nil }), context.Canceled)
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}
