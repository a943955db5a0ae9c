package models

import "time"

var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Schedule is a recurring weekly class slot. CurrentParticipants is only
// changed by booking and cancellation.
type Schedule struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Title               string     `gorm:"not null" json:"title"`
	Description         string     `gorm:"type:text" json:"description"`
	TrainerID           uint       `gorm:"not null;index" json:"trainerId"`
	Trainer             *Trainer   `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	DayOfWeek           string     `gorm:"column:day_of_week;not null" json:"dayOfWeek"`
	StartTime           string     `gorm:"column:start_time;not null" json:"startTime"`
	EndTime             string     `gorm:"column:end_time;not null" json:"endTime"`
	MaxParticipants     int        `gorm:"column:max_participants;not null" json:"maxParticipants"`
	CurrentParticipants int        `gorm:"column:current_participants;not null;default:0" json:"currentParticipants"`
	Room                string     `json:"room"`
	Difficulty          Difficulty `gorm:"not null;default:'beginner'" json:"difficulty"`
	Category            string     `gorm:"not null" json:"category"`
	IsActive            bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (s *Schedule) IsFull() bool {
	return s.CurrentParticipants >= s.MaxParticipants
}

func (s *Schedule) AvailableSpots() int {
	if s.IsFull() {
		return 0
	}
	return s.MaxParticipants - s.CurrentParticipants
}

// ScheduleSummary is what a booking shows about its class.
type ScheduleSummary struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	DayOfWeek string          `json:"dayOfWeek"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Room      string          `json:"room"`
	Category  string          `json:"category"`
	Trainer   *TrainerSummary `json:"trainer,omitempty"`
}

func (s Schedule) Summary() ScheduleSummary {
	summary := ScheduleSummary{
		ID:        s.ID,
		Title:     s.Title,
		DayOfWeek: s.DayOfWeek,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Room:      s.Room,
		Category:  s.Category,
	}
	if s.Trainer != nil {
		trainer := s.Trainer.Summary()
		summary.Trainer = &trainer
	}
	return summary
}
