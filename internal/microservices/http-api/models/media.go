package models

import "time"

// MediaType is the kind of work a Media row describes.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
	MediaTypeBook   MediaType = "book"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeMovie, MediaTypeSeries, MediaTypeBook:
		return true
	}
	return false
}

// Media is the canonical catalog entry for a work, shared by every user tracking it.
// (external_id, type) is unique.
type Media struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ExternalID  string     `json:"external_id" gorm:"size:50;not null;uniqueIndex:uq_media_external_type,priority:1"`
	Type        MediaType  `json:"type" gorm:"size:20;not null;uniqueIndex:uq_media_external_type,priority:2"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Genre       *string    `json:"genre,omitempty" gorm:"size:50"`
	ReleaseDate *time.Time `json:"release_date,omitempty" gorm:"type:date"`
	ImageURL    *string    `json:"image_url,omitempty" gorm:"size:255"`

	// movie
	Director *string `json:"director,omitempty" gorm:"size:100"`
	Runtime  *int    `json:"runtime,omitempty"`

	// series
	Creator           *string `json:"creator,omitempty" gorm:"size:100"`
	NumberOfSeasons   *int    `json:"number_of_seasons,omitempty"`
	EpisodesPerSeason *int    `json:"episodes_per_season,omitempty"`

	// book
	Author    *string `json:"author,omitempty" gorm:"size:100"`
	PageCount *int    `json:"page_count,omitempty"`
	Publisher *string `json:"publisher,omitempty" gorm:"size:100"`
}

func (Media) TableName() string {
	return "media"
}
