package service

import (
	"context"
	"errors"
	"time"

	"mediaminder/internal/microservices/http-api/models"
	"mediaminder/internal/microservices/http-api/repository"

	"github.com/sirupsen/logrus"
)

// AddInput is a request to track a work. Title is required only when the
// work is not in the catalog yet.
type AddInput struct {
	ExternalID string
	MediaType  models.MediaType
	Status     string
	Title      string
	ImageURL   *string
	Rating     *int
}

// UpdateInput carries the mutable fields of a tracking entry. For Rating and
// Review, Set* distinguishes "absent" from "present and null".
type UpdateInput struct {
	Status    *string
	SetRating bool
	Rating    *int
	SetReview bool
	Review    *string
}

type LibraryService interface {
	List(ctx context.Context, userID int64) ([]models.UserMedia, error)
	Get(ctx context.Context, userID, itemID int64) (*models.UserMedia, error)
	Add(ctx context.Context, userID int64, in AddInput) (*models.UserMedia, error)
	Update(ctx context.Context, userID, itemID int64, in UpdateInput) (*models.UserMedia, error)
	Delete(ctx context.Context, userID, itemID int64) error
}

type libraryService struct {
	store   repository.Store
	catalog CatalogService
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewLibraryService(store repository.Store, catalog CatalogService, log logrus.FieldLogger) LibraryService {
	return &libraryService{
		store:   store,
		catalog: catalog,
		log:     log,
		now:     time.Now,
	}
}

func (s *libraryService) List(ctx context.Context, userID int64) ([]models.UserMedia, error) {
	items, err := s.store.Library().ListByUser(ctx, userID)
	if err != nil {
		return nil, fromStore(err)
	}
	if items == nil {
		items = []models.UserMedia{}
	}
	return items, nil
}

func (s *libraryService) Get(ctx context.Context, userID, itemID int64) (*models.UserMedia, error) {
	item, err := s.store.Library().FindOwned(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, Internal(err)
	}
	return item, nil
}

// Add tracks a work for the user. A second add of the same work is a conflict;
// the existing entry is left untouched.
func (s *libraryService) Add(ctx context.Context, userID int64, in AddInput) (*models.UserMedia, error) {
	if err := validateStatus(in.Status); err != nil {
		return nil, err
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	var item *models.UserMedia
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		media, err := s.catalog.FindOrCreateTx(ctx, tx, MediaInput{
			ExternalID: in.ExternalID,
			Type:       in.MediaType,
			Title:      in.Title,
			ImageURL:   in.ImageURL,
		})
		if err != nil {
			return err
		}

		if _, err := tx.Library().FindByUserAndMedia(ctx, userID, media.ID); err == nil {
			return ErrAlreadyInList
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		item = &models.UserMedia{
			UserID:    userID,
			MediaID:   media.ID,
			Status:    in.Status,
			Rating:    in.Rating,
			UpdatedAt: s.now(),
		}
		if err := tx.Library().Create(ctx, item); err != nil {
			return err
		}
		item.Media = media
		return nil
	})
	if err != nil {
		return nil, fromStore(err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "item_id": item.ID, "media_id": item.MediaID}).Info("media added to list")
	return item, nil
}

// Update changes status, rating and review of an entry the user owns.
// Entries owned by someone else are reported as not found.
func (s *libraryService) Update(ctx context.Context, userID, itemID int64, in UpdateInput) (*models.UserMedia, error) {
	if in.Status != nil {
		if err := validateStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	if in.SetRating {
		if err := validateRating(in.Rating); err != nil {
			return nil, err
		}
	}

	var item *models.UserMedia
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		current, err := tx.Library().FindOwned(ctx, userID, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if in.Status != nil {
			current.Status = *in.Status
		}
		if in.SetRating {
			current.Rating = in.Rating
		}
		if in.SetReview {
			current.Review = in.Review
		}
		current.UpdatedAt = s.now()

		if err := tx.Library().Update(ctx, current); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		item = current
		return nil
	})
	if err != nil {
		return nil, fromStore(err)
	}
	return item, nil
}

func (s *libraryService) Delete(ctx context.Context, userID, itemID int64) error {
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Library().Delete(ctx, userID, itemID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrItemNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fromStore(err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "item_id": itemID}).Info("media removed from list")
	return nil
}
