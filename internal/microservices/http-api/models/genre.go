package models

type Genre struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string  `json:"name" gorm:"size:50;unique;not null"`
	MediaType *string `json:"media_type,omitempty" gorm:"size:20"`
}

func (Genre) TableName() string {
	return "genres"
}
