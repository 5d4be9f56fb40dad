package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
// Services receive a Store and run every mutation inside WithTx.
type Store interface {
	Users() UserRepository
	Media() MediaRepository
	Library() UserMediaRepository
	Genres() GenreRepository

	// WithTx runs fn in a transaction. fn must use the Store it is given.
	// Returning an error rolls everything back.
	WithTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

// gormStore is the PostgreSQL implementation of Store.
type gormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by gorm.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository        { return NewUserRepository(s.db) }
func (s *gormStore) Media() MediaRepository       { return NewMediaRepository(s.db) }
func (s *gormStore) Library() UserMediaRepository { return NewUserMediaRepository(s.db) }
func (s *gormStore) Genres() GenreRepository      { return NewGenreRepository(s.db) }

func (s *gormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
