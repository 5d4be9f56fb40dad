package repository

import (
	"context"

	"mediaminder/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserMediaRepository manages user_media rows. Every lookup that serves a
// request is scoped by user id so callers never see another user's rows.
type UserMediaRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.UserMedia, error)
	FindOwned(ctx context.Context, userID, id int64) (*models.UserMedia, error)
	FindByUserAndMedia(ctx context.Context, userID, mediaID int64) (*models.UserMedia, error)
	Create(ctx context.Context, item *models.UserMedia) error
	Update(ctx context.Context, item *models.UserMedia) error
	Delete(ctx context.Context, userID, id int64) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

type userMediaRepository struct {
	db *gorm.DB
}

func NewUserMediaRepository(db *gorm.DB) UserMediaRepository {
	return &userMediaRepository{db: db}
}

func (r *userMediaRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserMedia, error) {
	var items []models.UserMedia

	if err := r.db.WithContext(ctx).
		Preload("Media").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, translate("list user media", err)
	}

	return items, nil
}

func (r *userMediaRepository) FindOwned(ctx context.Context, userID, id int64) (*models.UserMedia, error) {
	var item models.UserMedia
	if err := r.db.WithContext(ctx).
		Preload("Media").
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		return nil, translate("find user media", err)
	}
	return &item, nil
}

func (r *userMediaRepository) FindByUserAndMedia(ctx context.Context, userID, mediaID int64) (*models.UserMedia, error) {
	var item models.UserMedia
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		First(&item).Error; err != nil {
		return nil, translate("find user media by media", err)
	}
	return &item, nil
}

func (r *userMediaRepository) Create(ctx context.Context, item *models.UserMedia) error {
	// Omit associations so the attached Media snapshot is never re-saved
	err := r.db.WithContext(ctx).Omit("Media").Create(item).Error
	return translate("create user media", err)
}

// Update writes status, rating, review and updated_at. Nil rating/review become NULL.
func (r *userMediaRepository) Update(ctx context.Context, item *models.UserMedia) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserMedia{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Updates(map[string]any{
			"status":     item.Status,
			"rating":     item.Rating,
			"review":     item.Review,
			"updated_at": item.UpdatedAt,
		})
	if result.Error != nil {
		return translate("update user media", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userMediaRepository) Delete(ctx context.Context, userID, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.UserMedia{})

	if result.Error != nil {
		return translate("delete user media", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userMediaRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserMedia{})
	if result.Error != nil {
		return 0, translate("delete user media by user", result.Error)
	}
	return result.RowsAffected, nil
}
