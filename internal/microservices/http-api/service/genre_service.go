package service

import (
	"context"
	"errors"
	"strings"

	"mediaminder/internal/microservices/http-api/models"
	"mediaminder/internal/microservices/http-api/repository"
)

type GenreService interface {
	List(ctx context.Context, mediaType string) ([]models.Genre, error)
	ForMedia(ctx context.Context, mediaID int64) ([]models.Genre, error)
}

type genreService struct {
	store repository.Store
}

func NewGenreService(store repository.Store) GenreService {
	return &genreService{store: store}
}

// List returns every genre, or the ones usable for mediaType when it is set.
func (s *genreService) List(ctx context.Context, mediaType string) ([]models.Genre, error) {
	var filter *string
	if t := strings.TrimSpace(mediaType); t != "" {
		if !models.MediaType(t).Valid() {
			return nil, ErrInvalidMediaType
		}
		filter = &t
	}

	list, err := s.store.Genres().List(ctx, filter)
	if err != nil {
		return nil, Internal(err)
	}
	return list, nil
}

// ForMedia lists the genres linked to one media row.
func (s *genreService) ForMedia(ctx context.Context, mediaID int64) ([]models.Genre, error) {
	if _, err := s.store.Media().FindByID(ctx, mediaID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, Internal(err)
	}

	list, err := s.store.Genres().ListByMedia(ctx, mediaID)
	if err != nil {
		return nil, Internal(err)
	}
	return list, nil
}
