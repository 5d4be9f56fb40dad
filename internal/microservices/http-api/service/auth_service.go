package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"mediaminder/internal/config"
	"mediaminder/internal/middleware/auth"
	"mediaminder/internal/microservices/http-api/models"
	"mediaminder/internal/microservices/http-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Claims is the payload of an access token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *models.User
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	store     repository.Store
	jwtSecret []byte
	tokenTTL  time.Duration
	log       logrus.FieldLogger
}

func NewAuthService(store repository.Store, cfg *config.Config, log logrus.FieldLogger) AuthService {
	return &authService{
		store:     store,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.JWTExpiry, // 24h by default
		log:       log,
	}
}

// Register creates an account and returns a token for it. Email is checked
// before username so each conflict has its own message.
func (s *authService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	for _, err := range []error{validateUsername(username), validateEmail(email), validatePassword(password)} {
		if err != nil {
			return nil, err
		}
	}

	// hash outside the transaction, bcrypt is slow
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, Internal(err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsPrivate:    true,
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().FindByEmail(ctx, email); err == nil {
			return ErrEmailInUse
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if _, err := tx.Users().FindByUsername(ctx, username); err == nil {
			return ErrNameInUse
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, fromStore(err)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, Internal(err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return &AuthResult{Token: token, User: user}, nil
}

// Login authenticates by email. Unknown email and wrong password fail the same way.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, Internal(err)
		}
		// keep timing close to the wrong-password path
		auth.BurnCompare(password)
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, Internal(err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses an HS256 token and returns its claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
