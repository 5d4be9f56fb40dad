package dto

import "time"

// Request/response shapes of the mediaminder REST API as seen by the CLI.

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type AddMediaRequest struct {
	MediaID    string  `json:"media_id"`
	MediaType  string  `json:"media_type"`
	Status     string  `json:"status"`
	Title      string  `json:"title,omitempty"`
	PosterPath *string `json:"poster_path,omitempty"`
	Rating     *int    `json:"rating,omitempty"`
}

// UpdateMediaRequest is sent as a map so that a cleared rating goes out as null.
type UpdateMediaRequest map[string]interface{}

type Media struct {
	ID         int64   `json:"id"`
	ExternalID string  `json:"external_id"`
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	ImageURL   *string `json:"image_url"`
}

// UserMedia is one list entry. Media is nil and Error is set when the
// server could not load the entry's media.
type UserMedia struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MediaID   int64     `json:"media_id"`
	Media     *Media    `json:"media"`
	Status    string    `json:"status"`
	Rating    *int      `json:"rating"`
	Review    *string   `json:"review"`
	UpdatedAt time.Time `json:"updated_at"`
	Error     string    `json:"error,omitempty"`
}

type UpdateProfileRequest struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	IsPrivate *bool   `json:"is_private,omitempty"`
}

type ProfileResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Genre struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	MediaType *string `json:"media_type"`
}
