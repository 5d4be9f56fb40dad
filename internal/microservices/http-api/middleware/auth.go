package middleware

import (
	"errors"
	"net/http"
	"strings"

	"mediaminder/internal/microservices/http-api/dto"
	"mediaminder/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests
// It checks for the presence and validity of a JWT token in the Authorization header
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: service.ErrMissingToken.Message})
			return
		}

		// Extract token (format: "Bearer <token>"), the scheme is case-insensitive
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: service.ErrInvalidToken.Message})
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			msg := service.ErrInvalidToken.Message
			var se *service.Error
			if errors.As(err, &se) && se.Kind == service.KindAuth {
				msg = se.Message
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: msg})
			return
		}

		// Set user info in context for handlers to use
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)

		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
