package models

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex:uq_users_username;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex:uq_users_email;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:200;not null" json:"-"` // never serialized
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	IsPrivate    bool      `gorm:"not null;default:true" json:"is_private"`

	// owned rows, removed with the user
	Library []UserMedia `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (User) TableName() string {
	return "users"
}
