package models

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no-show"
)

var BookingStatuses = []BookingStatus{
	BookingStatusConfirmed,
	BookingStatusCancelled,
	BookingStatusCompleted,
	BookingStatusNoShow,
}

func (s BookingStatus) Valid() bool {
	for _, status := range BookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Booking reserves one seat of a schedule on one calendar date.
// (UserID, ScheduleID, BookingDate) is unique.
type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"not null;uniqueIndex:idx_booking_user_schedule_date,priority:1" json:"userId"`
	User        *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ScheduleID  uint          `gorm:"not null;index;uniqueIndex:idx_booking_user_schedule_date,priority:2" json:"scheduleId"`
	Schedule    *Schedule     `gorm:"foreignKey:ScheduleID" json:"-"`
	BookingDate time.Time     `gorm:"column:booking_date;type:date;not null;index;uniqueIndex:idx_booking_user_schedule_date,priority:3" json:"bookingDate"`
	Status      BookingStatus `gorm:"not null;default:'confirmed';index" json:"status"`
	Notes       string        `gorm:"size:500" json:"notes"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// BookingView is a booking as returned by the API, with its class and
// trainer attached and, for admin listings, the member.
type BookingView struct {
	ID          uint             `json:"id"`
	BookingDate string           `json:"bookingDate"`
	Status      BookingStatus    `json:"status"`
	Notes       string           `json:"notes"`
	Schedule    *ScheduleSummary `json:"schedule,omitempty"`
	User        *UserSummary     `json:"user,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

const DateLayout = "2006-01-02"

func (b Booking) View(withUser bool) BookingView {
	view := BookingView{
		ID:          b.ID,
		BookingDate: b.BookingDate.Format(DateLayout),
		Status:      b.Status,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Schedule != nil {
		schedule := b.Schedule.Summary()
		view.Schedule = &schedule
	}
	if withUser && b.User != nil {
		user := b.User.Summary()
		view.User = &user
	}
	return view
}

func BookingViews(bookings []Booking, withUser bool) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, b.View(withUser))
	}
	return views
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
