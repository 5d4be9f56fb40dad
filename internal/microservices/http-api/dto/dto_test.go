package dto

import (
	"encoding/json"
	"testing"

	"mediaminder/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalID_StringOrNumber(t *testing.T) {
	var fromString, fromNumber AddMediaRequest
	require.NoError(t, json.Unmarshal([]byte(`{"media_id":"603"}`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`{"media_id":603}`), &fromNumber))

	assert.Equal(t, ExternalID("603"), fromString.MediaID)
	assert.Equal(t, ExternalID("603"), fromNumber.MediaID)

	var bad AddMediaRequest
	assert.Error(t, json.Unmarshal([]byte(`{"media_id":{"x":1}}`), &bad))
}

func TestUpdateMediaRequest_NullVersusAbsent(t *testing.T) {
	var absent UpdateMediaRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"done"}`), &absent))
	assert.False(t, absent.Rating.Set)
	assert.False(t, absent.Review.Set)

	var cleared UpdateMediaRequest
	require.NoError(t, json.Unmarshal([]byte(`{"rating":null,"review":null}`), &cleared))
	assert.True(t, cleared.Rating.Set)
	assert.Nil(t, cleared.Rating.Value)
	assert.True(t, cleared.Review.Set)
	assert.Nil(t, cleared.Review.Value)

	var set UpdateMediaRequest
	require.NoError(t, json.Unmarshal([]byte(`{"rating":8,"review":"ok","owner":5}`), &set))
	assert.Equal(t, 8, *set.Rating.Value)
	assert.Equal(t, "ok", *set.Review.Value)

	var bad UpdateMediaRequest
	assert.Error(t, json.Unmarshal([]byte(`{"rating":"eight"}`), &bad))
}

func TestToUserMediaResponse_Degraded(t *testing.T) {
	item := &models.UserMedia{ID: 3, UserID: 1, MediaID: 9, Status: "watching"}

	body, err := json.Marshal(ToUserMediaResponse(item))
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":3,"user_id":1,"media_id":9,"status":"watching","error":"media unavailable"}`, string(body))
}

func TestToUserMediaResponse_Full(t *testing.T) {
	item := &models.UserMedia{
		ID: 3, UserID: 1, MediaID: 9, Status: "watching",
		Media: &models.Media{ID: 9, ExternalID: "603", Type: models.MediaTypeMovie, Title: "The Matrix"},
	}

	body, err := json.Marshal(ToUserMediaResponse(item))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Nil(t, got["rating"])
	assert.Nil(t, got["review"])
	assert.NotContains(t, got, "error")
	media := got["media"].(map[string]interface{})
	assert.Equal(t, "603", media["external_id"])
	assert.Equal(t, "movie", media["type"])
	assert.Contains(t, media, "image_url")
}

func TestToUserResponse_NoPasswordHash(t *testing.T) {
	body, err := json.Marshal(ToUserResponse(&models.User{ID: 1, Username: "a", PasswordHash: "secret-hash"}))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret-hash")
	assert.NotContains(t, string(body), "password")
}
