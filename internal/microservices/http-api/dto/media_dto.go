package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"mediaminder/internal/microservices/http-api/models"
)

// ExternalID is an upstream catalog id. Clients send it as a JSON string or number.
type ExternalID string

func (e *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = ExternalID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("media_id must be a string or a number")
		}
		*e = ExternalID(n.String())
		return nil
	}
}

// AddMediaRequest: payload to add a work to the user's list.
// Title and PosterPath are only used when the work is new to the catalog.
type AddMediaRequest struct {
	MediaID    ExternalID `json:"media_id" binding:"required"`
	MediaType  string     `json:"media_type" binding:"required"`
	Status     string     `json:"status" binding:"required"`
	Title      string     `json:"title"`
	PosterPath *string    `json:"poster_path"`
	Rating     *int       `json:"rating"`
}

// UpdateMediaRequest: partial update of a list entry. A null rating or review clears it.
type UpdateMediaRequest struct {
	Status *string          `json:"status"`
	Rating Optional[int]    `json:"rating"`
	Review Optional[string] `json:"review"`
}

// MediaSnapshot is the media embedded in every list entry.
type MediaSnapshot struct {
	ID         int64            `json:"id"`
	ExternalID string           `json:"external_id"`
	Type       models.MediaType `json:"type"`
	Title      string           `json:"title"`
	ImageURL   *string          `json:"image_url"`
}

// UserMediaResponse: one entry of the user's list
type UserMediaResponse struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	MediaID   int64          `json:"media_id"`
	Media     *MediaSnapshot `json:"media"`
	Status    string         `json:"status"`
	Rating    *int           `json:"rating"`
	Review    *string        `json:"review"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// UnavailableUserMediaResponse is sent instead of UserMediaResponse when the
// entry's media row cannot be loaded.
type UnavailableUserMediaResponse struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id"`
	MediaID int64  `json:"media_id"`
	Status  string `json:"status"`
	Error   string `json:"error"`
}

const MediaUnavailable = "media unavailable"

// ToUserMediaResponse returns a UserMediaResponse, or the degraded form when
// item.Media is nil.
func ToUserMediaResponse(item *models.UserMedia) interface{} {
	if item.Media == nil {
		return UnavailableUserMediaResponse{
			ID:      item.ID,
			UserID:  item.UserID,
			MediaID: item.MediaID,
			Status:  item.Status,
			Error:   MediaUnavailable,
		}
	}
	return UserMediaResponse{
		ID:      item.ID,
		UserID:  item.UserID,
		MediaID: item.MediaID,
		Media: &MediaSnapshot{
			ID:         item.Media.ID,
			ExternalID: item.Media.ExternalID,
			Type:       item.Media.Type,
			Title:      item.Media.Title,
			ImageURL:   item.Media.ImageURL,
		},
		Status:    item.Status,
		Rating:    item.Rating,
		Review:    item.Review,
		UpdatedAt: item.UpdatedAt,
	}
}

func ToUserMediaList(items []models.UserMedia) []interface{} {
	out := make([]interface{}, 0, len(items))
	for i := range items {
		out = append(out, ToUserMediaResponse(&items[i]))
	}
	return out
}
