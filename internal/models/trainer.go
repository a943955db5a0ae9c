package models

import "time"

// Trainer teaches one or more recurring schedules.
type Trainer struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"not null" json:"name"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone           string     `json:"phone"`
	Specialization  string     `gorm:"not null" json:"specialization"`
	Bio             string     `gorm:"type:text" json:"bio"`
	ExperienceYears int        `gorm:"column:experience_years;not null;default:0" json:"experienceYears"`
	Certifications  StringList `gorm:"type:jsonb;default:'[]'" json:"certifications"`
	PhotoURL        string     `gorm:"column:photo_url" json:"photoUrl"`
	IsActive        bool       `gorm:"not null;default:true" json:"isActive"`
	Schedules       []Schedule `gorm:"foreignKey:TrainerID" json:"schedules,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// TrainerSummary holds the public trainer fields attached to schedules and bookings.
type TrainerSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	PhotoURL       string `json:"photoUrl"`
}

func (t Trainer) Summary() TrainerSummary {
	return TrainerSummary{ID: t.ID, Name: t.Name, Specialization: t.Specialization, PhotoURL: t.PhotoURL}
}
