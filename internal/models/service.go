package models

import "time"

// Service is something the gym offers besides classes (personal training, sauna, ...).
type Service struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"not null;default:0" json:"price"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null;default:0" json:"durationMinutes"`
	ImageURL        string    `gorm:"column:image_url" json:"imageUrl"`
	IsActive        bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
