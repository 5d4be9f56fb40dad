package dto

import (
	"time"

	"mediaminder/internal/microservices/http-api/models"
)

// UserResponse is the public view of a user. The password hash never leaves the server.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsPrivate: u.IsPrivate,
		CreatedAt: u.CreatedAt,
	}
}

// ProfileResponse wraps a user for GET /user/profile
type ProfileResponse struct {
	User UserResponse `json:"user"`
}

// UpdateProfileRequest: every field is optional, absent fields are left unchanged
type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsPrivate *bool   `json:"is_private"`
}

// UpdateProfileResponse: response after a profile change
type UpdateProfileResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// MessageResponse is the body of endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
