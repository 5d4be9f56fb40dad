package service

import (
	"context"
	"errors"
	"strings"

	"mediaminder/internal/middleware/auth"
	"mediaminder/internal/microservices/http-api/models"
	"mediaminder/internal/microservices/http-api/repository"

	"github.com/sirupsen/logrus"
)

// ProfileInput holds optional profile changes; nil means "leave as is".
type ProfileInput struct {
	Username  *string
	Email     *string
	Password  *string
	IsPrivate *bool
}

type ProfileService interface {
	Get(ctx context.Context, userID int64) (*models.User, error)
	Update(ctx context.Context, userID int64, in ProfileInput) (*models.User, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

type profileService struct {
	store repository.Store
	log   logrus.FieldLogger
}

func NewProfileService(store repository.Store, log logrus.FieldLogger) ProfileService {
	return &profileService{store: store, log: log}
}

func (s *profileService) Get(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, Internal(err)
	}
	return user, nil
}

// Update applies all requested changes in one transaction or none of them.
func (s *profileService) Update(ctx context.Context, userID int64, in ProfileInput) (*models.User, error) {
	var newHash string
	if in.Password != nil && *in.Password != "" {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, Internal(err)
		}
		newHash = hash
	}

	var user *models.User
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		current, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if in.Username != nil {
			username := strings.TrimSpace(*in.Username)
			if username == "" {
				return ErrEmptyUsername
			}
			if err := validateUsername(username); err != nil {
				return err
			}
			if username != current.Username {
				if err := ensureFree(tx.Users().FindByUsername(ctx, username)); err != nil {
					if errors.Is(err, errTaken) {
						return ErrNameInUse
					}
					return err
				}
				current.Username = username
			}
		}

		if in.Email != nil {
			email := strings.TrimSpace(*in.Email)
			if email == "" {
				return ErrEmptyEmail
			}
			if err := validateEmail(email); err != nil {
				return err
			}
			if email != current.Email {
				if err := ensureFree(tx.Users().FindByEmail(ctx, email)); err != nil {
					if errors.Is(err, errTaken) {
						return ErrEmailInUse
					}
					return err
				}
				current.Email = email
			}
		}

		if newHash != "" {
			current.PasswordHash = newHash
		}
		if in.IsPrivate != nil {
			current.IsPrivate = *in.IsPrivate
		}

		if err := tx.Users().Update(ctx, current); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		user = current
		return nil
	})
	if err != nil {
		return nil, fromStore(err)
	}
	return user, nil
}

var errTaken = errors.New("taken")

// ensureFree turns a lookup result into errTaken when a row was found.
// The row can only belong to someone else: callers skip unchanged values.
func ensureFree(_ *models.User, err error) error {
	if err == nil {
		return errTaken
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// DeleteAccount removes the user and every list entry they own. Media rows
// are shared and stay.
func (s *profileService) DeleteAccount(ctx context.Context, userID int64) error {
	var removed int64
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		n, err := tx.Library().DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		removed = n

		if err := tx.Users().Delete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fromStore(err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "entries_removed": removed}).Info("account deleted")
	return nil
}
