package service

import (
	"context"
	"errors"
	"strings"

	"mediaminder/internal/microservices/http-api/models"
	"mediaminder/internal/microservices/http-api/repository"

	"github.com/sirupsen/logrus"
)

// MediaInput identifies a work by its upstream id and type. Title and
// ImageURL are only used when the row has to be created.
type MediaInput struct {
	ExternalID string
	Type       models.MediaType
	Title      string
	ImageURL   *string
}

// CatalogService resolves canonical Media rows. Once a row exists its
// attributes are never refreshed from later requests.
type CatalogService interface {
	FindOrCreate(ctx context.Context, in MediaInput) (*models.Media, error)
	// FindOrCreateTx does the same inside a caller's transaction.
	FindOrCreateTx(ctx context.Context, tx repository.Store, in MediaInput) (*models.Media, error)
}

type catalogService struct {
	store repository.Store
	log   logrus.FieldLogger
}

func NewCatalogService(store repository.Store, log logrus.FieldLogger) CatalogService {
	return &catalogService{store: store, log: log}
}

func (s *catalogService) FindOrCreate(ctx context.Context, in MediaInput) (*models.Media, error) {
	var media *models.Media
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		m, err := s.FindOrCreateTx(ctx, tx, in)
		media = m
		return err
	})
	if err != nil {
		return nil, fromStore(err)
	}
	return media, nil
}

func (s *catalogService) FindOrCreateTx(ctx context.Context, tx repository.Store, in MediaInput) (*models.Media, error) {
	externalID := strings.TrimSpace(in.ExternalID)
	if externalID == "" {
		return nil, ErrMissingFields
	}
	if !in.Type.Valid() {
		return nil, ErrInvalidMediaType
	}
	title := strings.TrimSpace(in.Title)
	if err := validateMediaInput(externalID, title, in.ImageURL); err != nil {
		return nil, err
	}

	existing, err := tx.Media().FindByExternal(ctx, externalID, in.Type)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fromStore(err)
	}

	if title == "" {
		return nil, ErrTitleRequired
	}

	media := &models.Media{
		ExternalID: externalID,
		Type:       in.Type,
		Title:      title,
		ImageURL:   in.ImageURL,
	}

	// savepoint: losing an insert race must not abort the caller's transaction
	err = tx.WithTx(ctx, func(sp repository.Store) error {
		return sp.Media().Create(ctx, media)
	})
	if err != nil {
		if _, dup := repository.IsDuplicate(err); dup {
			winner, findErr := tx.Media().FindByExternal(ctx, externalID, in.Type)
			if findErr != nil {
				return nil, fromStore(findErr)
			}
			return winner, nil
		}
		return nil, fromStore(err)
	}

	s.log.WithFields(logrus.Fields{
		"media_id":    media.ID,
		"external_id": media.ExternalID,
		"type":        media.Type,
	}).Debug("media created")
	return media, nil
}
