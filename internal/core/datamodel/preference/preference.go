package preference

import "time"

type Preference struct {
	ID              int64     `gorm:"primaryKey"`
	UserID          int64     `gorm:"column:user_id;uniqueIndex;not null"`
	HeaderColor     string    `gorm:"column:header_color;size:7;not null"`
	ButtonColor     string    `gorm:"column:button_color;size:7;not null"`
	BackgroundColor string    `gorm:"column:background_color;size:7;not null"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (Preference) TableName() string {
	return "user_preferences"
}
