package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"mediaminder/internal/microservices/http-api/models"
)

// memoryData is the full state of a MemoryStore. Rows are stored by value;
// updates replace the whole struct so clones can share pointer fields.
type memoryData struct {
	users       map[int64]models.User
	media       map[int64]models.Media
	userMedia   map[int64]models.UserMedia
	genres      map[int64]models.Genre
	mediaGenres []models.MediaGenre

	nextUser, nextMedia, nextUserMedia, nextGenre int64
}

func (d *memoryData) clone() *memoryData {
	c := *d
	c.users = make(map[int64]models.User, len(d.users))
	for k, v := range d.users {
		c.users[k] = v
	}
	c.media = make(map[int64]models.Media, len(d.media))
	for k, v := range d.media {
		c.media[k] = v
	}
	c.userMedia = make(map[int64]models.UserMedia, len(d.userMedia))
	for k, v := range d.userMedia {
		c.userMedia[k] = v
	}
	c.genres = make(map[int64]models.Genre, len(d.genres))
	for k, v := range d.genres {
		c.genres[k] = v
	}
	c.mediaGenres = append([]models.MediaGenre(nil), d.mediaGenres...)
	return &c
}

// MemoryStore is an in-process Store with the same constraints as the SQL
// schema: unique username/email, unique (external_id, type), unique
// (user_id, media_id), and cascading deletes. Transactions work on a copy that
// replaces the live state only on success, and are serialized by one lock.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memoryData
	inTx bool
	now  func() time.Time
}

// NewMemoryStore returns an empty store seeded with the default genres.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		mu: &sync.Mutex{},
		data: &memoryData{
			users:     map[int64]models.User{},
			media:     map[int64]models.Media{},
			userMedia: map[int64]models.UserMedia{},
			genres:    map[int64]models.Genre{},
		},
		now: time.Now,
	}
	s.seedGenres()
	return s
}

func (s *MemoryStore) seedGenres() {
	tagged := map[string]string{"Documentary": "movie", "Animation": "series", "Biography": "book", "Poetry": "book"}
	names := []string{"Action", "Adventure", "Comedy", "Drama", "Fantasy", "Horror", "Mystery", "Romance",
		"Science Fiction", "Thriller", "Documentary", "Animation", "Biography", "Poetry"}
	for _, name := range names {
		s.data.nextGenre++
		g := models.Genre{ID: s.data.nextGenre, Name: name}
		if t, ok := tagged[name]; ok {
			g.MediaType = &t
		}
		s.data.genres[g.ID] = g
	}
}

// do runs fn against the current state, taking the lock unless a transaction
// already holds it.
func (s *MemoryStore) do(fn func(d *memoryData) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.data)
}

func (s *MemoryStore) Users() UserRepository        { return &memUserRepo{s: s} }
func (s *MemoryStore) Media() MediaRepository       { return &memMediaRepo{s: s} }
func (s *MemoryStore) Library() UserMediaRepository { return &memUserMediaRepo{s: s} }
func (s *MemoryStore) Genres() GenreRepository      { return &memGenreRepo{s: s} }

func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx {
		// nested: behave like a savepoint
		snapshot := s.data.clone()
		if err := fn(s); err != nil {
			*s.data = *snapshot
			return err
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.clone()
	tx := &MemoryStore{mu: s.mu, data: working, inTx: true, now: s.now}
	if err := fn(tx); err != nil {
		return err
	}
	*s.data = *working
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// AttachGenre links a media row to a genre. There is no API write path for
// genres; this exists for seeding and tests.
func (s *MemoryStore) AttachGenre(mediaID, genreID int64) error {
	return s.do(func(d *memoryData) error {
		if _, ok := d.media[mediaID]; !ok {
			return fmt.Errorf("attach genre: media %d: %w", mediaID, ErrNotFound)
		}
		if _, ok := d.genres[genreID]; !ok {
			return fmt.Errorf("attach genre: genre %d: %w", genreID, ErrNotFound)
		}
		d.mediaGenres = append(d.mediaGenres, models.MediaGenre{MediaID: mediaID, GenreID: genreID})
		return nil
	})
}

type memUserRepo struct{ s *MemoryStore }

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	return r.s.do(func(d *memoryData) error {
		if err := checkUserUnique(d, user); err != nil {
			return err
		}
		d.nextUser++
		user.ID = d.nextUser
		if user.CreatedAt.IsZero() {
			user.CreatedAt = r.s.now()
		}
		d.users[user.ID] = *user
		return nil
	})
}

func checkUserUnique(d *memoryData, user *models.User) error {
	for _, u := range d.users {
		if u.ID == user.ID {
			continue
		}
		if u.Username == user.Username {
			return &DuplicateError{Constraint: ConstraintUsersUsername}
		}
		if u.Email == user.Email {
			return &DuplicateError{Constraint: ConstraintUsersEmail}
		}
	}
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *memUserRepo) find(match func(models.User) bool) (*models.User, error) {
	var found *models.User
	err := r.s.do(func(d *memoryData) error {
		for _, u := range d.users {
			if match(u) {
				u := u
				found = &u
				return nil
			}
		}
		return ErrNotFound
	})
	return found, err
}

func (r *memUserRepo) Update(ctx context.Context, user *models.User) error {
	return r.s.do(func(d *memoryData) error {
		current, ok := d.users[user.ID]
		if !ok {
			return ErrNotFound
		}
		if err := checkUserUnique(d, user); err != nil {
			return err
		}
		current.Username = user.Username
		current.Email = user.Email
		current.PasswordHash = user.PasswordHash
		current.IsPrivate = user.IsPrivate
		d.users[user.ID] = current
		return nil
	})
}

func (r *memUserRepo) Delete(ctx context.Context, id int64) error {
	return r.s.do(func(d *memoryData) error {
		if _, ok := d.users[id]; !ok {
			return ErrNotFound
		}
		delete(d.users, id)
		// ON DELETE CASCADE
		for itemID, item := range d.userMedia {
			if item.UserID == id {
				delete(d.userMedia, itemID)
			}
		}
		return nil
	})
}

type memMediaRepo struct{ s *MemoryStore }

func (r *memMediaRepo) FindByExternal(ctx context.Context, externalID string, mediaType models.MediaType) (*models.Media, error) {
	var found *models.Media
	err := r.s.do(func(d *memoryData) error {
		for _, m := range d.media {
			if m.ExternalID == externalID && m.Type == mediaType {
				m := m
				found = &m
				return nil
			}
		}
		return ErrNotFound
	})
	return found, err
}

func (r *memMediaRepo) FindByID(ctx context.Context, id int64) (*models.Media, error) {
	var found *models.Media
	err := r.s.do(func(d *memoryData) error {
		m, ok := d.media[id]
		if !ok {
			return ErrNotFound
		}
		found = &m
		return nil
	})
	return found, err
}

func (r *memMediaRepo) Create(ctx context.Context, m *models.Media) error {
	return r.s.do(func(d *memoryData) error {
		for _, existing := range d.media {
			if existing.ExternalID == m.ExternalID && existing.Type == m.Type {
				return &DuplicateError{Constraint: ConstraintMediaExternal}
			}
		}
		d.nextMedia++
		m.ID = d.nextMedia
		d.media[m.ID] = *m
		return nil
	})
}

type memUserMediaRepo struct{ s *MemoryStore }

// withMedia attaches a copy of the referenced media row, or nil if it is gone.
func withMedia(d *memoryData, item models.UserMedia) models.UserMedia {
	item.Media = nil
	if m, ok := d.media[item.MediaID]; ok {
		item.Media = &m
	}
	return item
}

func (r *memUserMediaRepo) ListByUser(ctx context.Context, userID int64) ([]models.UserMedia, error) {
	items := []models.UserMedia{}
	err := r.s.do(func(d *memoryData) error {
		for _, item := range d.userMedia {
			if item.UserID == userID {
				items = append(items, withMedia(d, item))
			}
		}
		return nil
	})
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, err
}

func (r *memUserMediaRepo) FindOwned(ctx context.Context, userID, id int64) (*models.UserMedia, error) {
	var found *models.UserMedia
	err := r.s.do(func(d *memoryData) error {
		item, ok := d.userMedia[id]
		if !ok || item.UserID != userID {
			return ErrNotFound
		}
		item = withMedia(d, item)
		found = &item
		return nil
	})
	return found, err
}

func (r *memUserMediaRepo) FindByUserAndMedia(ctx context.Context, userID, mediaID int64) (*models.UserMedia, error) {
	var found *models.UserMedia
	err := r.s.do(func(d *memoryData) error {
		for _, item := range d.userMedia {
			if item.UserID == userID && item.MediaID == mediaID {
				item.Media = nil
				found = &item
				return nil
			}
		}
		return ErrNotFound
	})
	return found, err
}

func (r *memUserMediaRepo) Create(ctx context.Context, item *models.UserMedia) error {
	return r.s.do(func(d *memoryData) error {
		if _, ok := d.users[item.UserID]; !ok {
			return fmt.Errorf("create user media: foreign key user_id=%d violated", item.UserID)
		}
		if _, ok := d.media[item.MediaID]; !ok {
			return fmt.Errorf("create user media: foreign key media_id=%d violated", item.MediaID)
		}
		for _, existing := range d.userMedia {
			if existing.UserID == item.UserID && existing.MediaID == item.MediaID {
				return &DuplicateError{Constraint: ConstraintUserMediaOwner}
			}
		}
		d.nextUserMedia++
		item.ID = d.nextUserMedia
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = r.s.now()
		}
		stored := *item
		stored.Media = nil
		d.userMedia[item.ID] = stored
		return nil
	})
}

func (r *memUserMediaRepo) Update(ctx context.Context, item *models.UserMedia) error {
	return r.s.do(func(d *memoryData) error {
		current, ok := d.userMedia[item.ID]
		if !ok || current.UserID != item.UserID {
			return ErrNotFound
		}
		current.Status = item.Status
		current.Rating = item.Rating
		current.Review = item.Review
		current.UpdatedAt = item.UpdatedAt
		d.userMedia[item.ID] = current
		return nil
	})
}

func (r *memUserMediaRepo) Delete(ctx context.Context, userID, id int64) error {
	return r.s.do(func(d *memoryData) error {
		item, ok := d.userMedia[id]
		if !ok || item.UserID != userID {
			return ErrNotFound
		}
		delete(d.userMedia, id)
		return nil
	})
}

func (r *memUserMediaRepo) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.s.do(func(d *memoryData) error {
		for id, item := range d.userMedia {
			if item.UserID == userID {
				delete(d.userMedia, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

type memGenreRepo struct{ s *MemoryStore }

func (r *memGenreRepo) List(ctx context.Context, mediaType *string) ([]models.Genre, error) {
	list := []models.Genre{}
	err := r.s.do(func(d *memoryData) error {
		for _, g := range d.genres {
			if mediaType != nil && g.MediaType != nil && *g.MediaType != *mediaType {
				continue
			}
			list = append(list, g)
		}
		return nil
	})
	sortGenres(list)
	return list, err
}

func (r *memGenreRepo) ListByMedia(ctx context.Context, mediaID int64) ([]models.Genre, error) {
	list := []models.Genre{}
	err := r.s.do(func(d *memoryData) error {
		for _, link := range d.mediaGenres {
			if link.MediaID != mediaID {
				continue
			}
			if g, ok := d.genres[link.GenreID]; ok {
				list = append(list, g)
			}
		}
		return nil
	})
	sortGenres(list)
	return list, err
}

func sortGenres(list []models.Genre) {
	sort.Slice(list, func(i, j int) bool { return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name) })
}
