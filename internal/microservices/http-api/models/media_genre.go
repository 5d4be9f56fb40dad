package models

// MediaGenre is the association row between media and genres (composite key).
type MediaGenre struct {
	MediaID int64 `json:"media_id" gorm:"primaryKey"`
	GenreID int64 `json:"genre_id" gorm:"primaryKey"`
}

func (MediaGenre) TableName() string {
	return "media_genres"
}
