package dto

import "mediaminder/internal/microservices/http-api/models"

// GenreResponse: a genre, media_type is null for genres shared by every type
type GenreResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	MediaType *string `json:"media_type"`
}

func ToGenreList(genres []models.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreResponse{ID: g.ID, Name: g.Name, MediaType: g.MediaType})
	}
	return out
}
