package models

import "time"

// UserMedia is one user's tracking entry for one Media row.
// At most one row exists per (user_id, media_id).
type UserMedia struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_media_user_media,priority:1" json:"user_id"`
	MediaID   int64     `gorm:"not null;uniqueIndex:uq_user_media_user_media,priority:2;index" json:"media_id"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	Rating    *int      `json:"rating"`
	Review    *string   `gorm:"type:text" json:"review"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Filled only by explicit Preload / lookup, never lazily.
	Media *Media `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE;" json:"media,omitempty"`
}

func (UserMedia) TableName() string {
	return "user_media"
}
