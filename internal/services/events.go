package services

import (
	"context"
	"time"

	"github.com/fitzone/fitzone-backend/internal/models"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is pushed to dashboards whenever a booking changes occupancy.
type BookingEvent struct {
	Type                string    `json:"type"`
	BookingID           uint      `json:"bookingId"`
	UserID              uint      `json:"userId"`
	ScheduleID          uint      `json:"scheduleId"`
	BookingDate         string    `json:"bookingDate"`
	Status              string    `json:"status"`
	CurrentParticipants int       `json:"currentParticipants"`
	MaxParticipants     int       `json:"maxParticipants"`
	OccurredAt          time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, booking *models.Booking, at time.Time) BookingEvent {
	event := BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ScheduleID:  booking.ScheduleID,
		BookingDate: booking.BookingDate.Format(models.DateLayout),
		Status:      string(booking.Status),
		OccurredAt:  at,
	}
	if booking.Schedule != nil {
		event.CurrentParticipants = booking.Schedule.CurrentParticipants
		event.MaxParticipants = booking.Schedule.MaxParticipants
	}
	return event
}

// Publisher delivers booking events. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

// EventSink receives events on the consuming side, e.g. the websocket hub.
type EventSink interface {
	DeliverBookingEvent(event BookingEvent)
}

// LocalPublisher hands events straight to an in-process sink. It is used
// when Redis is not configured.
type LocalPublisher struct {
	sink EventSink
}

func NewLocalPublisher(sink EventSink) *LocalPublisher {
	return &LocalPublisher{sink: sink}
}

func (p *LocalPublisher) Publish(_ context.Context, event BookingEvent) error {
	p.sink.DeliverBookingEvent(event)
	return nil
}
