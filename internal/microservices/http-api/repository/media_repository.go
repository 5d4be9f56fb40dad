package repository

import (
	"context"

	"mediaminder/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MediaRepository interface {
	FindByExternal(ctx context.Context, externalID string, mediaType models.MediaType) (*models.Media, error)
	FindByID(ctx context.Context, id int64) (*models.Media, error)
	Create(ctx context.Context, m *models.Media) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) FindByExternal(ctx context.Context, externalID string, mediaType models.MediaType) (*models.Media, error) {
	var m models.Media
	if err := r.db.WithContext(ctx).
		Where("external_id = ? AND type = ?", externalID, mediaType).
		First(&m).Error; err != nil {
		return nil, translate("find media by external id", err)
	}
	return &m, nil
}

func (r *mediaRepository) FindByID(ctx context.Context, id int64) (*models.Media, error) {
	var m models.Media
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate("find media", err)
	}
	return &m, nil
}

func (r *mediaRepository) Create(ctx context.Context, m *models.Media) error {
	// GORM will populate m.ID
	return translate("create media", r.db.WithContext(ctx).Create(m).Error)
}
