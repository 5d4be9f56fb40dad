package repository

import (
	"context"
	"fmt"

	"mediaminder/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// GenreRepository is read-only; genres are seeded by migrations.
type GenreRepository interface {
	List(ctx context.Context, mediaType *string) ([]models.Genre, error)
	ListByMedia(ctx context.Context, mediaID int64) ([]models.Genre, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

// List returns genres ordered by name. A non-nil mediaType keeps genres tagged
// with that type plus the untagged ones.
func (r *genreRepository) List(ctx context.Context, mediaType *string) ([]models.Genre, error) {
	var list []models.Genre
	q := r.db.WithContext(ctx).Order("name asc")
	if mediaType != nil {
		q = q.Where("media_type = ? OR media_type IS NULL", *mediaType)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

func (r *genreRepository) ListByMedia(ctx context.Context, mediaID int64) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).
		Model(&models.Genre{}).
		Joins("JOIN media_genres mg ON mg.genre_id = genres.id").
		Where("mg.media_id = ?", mediaID).
		Order("genres.name asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres by media: %w", err)
	}
	return list, nil
}
