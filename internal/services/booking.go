package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"go.uber.org/zap"
)

type MembershipChecker interface {
	HasActive(ctx context.Context, userID uint, at time.Time) (bool, error)
}

type ScheduleStore interface {
	FindByID(ctx context.Context, id uint) (*models.Schedule, error)
	ReserveSeat(ctx context.Context, id uint) (bool, error)
	ReleaseSeat(ctx context.Context, id uint) (bool, error)
}

type BookingStore interface {
	FindByKey(ctx context.Context, userID, scheduleID uint, date time.Time) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Reactivate(ctx context.Context, id uint, notes string) error
	FindOwned(ctx context.Context, id, userID uint) (*models.Booking, error)
	MarkCancelled(ctx context.Context, id uint) (bool, error)
	FindDetailed(ctx context.Context, id uint) (*models.Booking, error)
	List(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BookingNotifier tells a member about changes to their bookings.
type BookingNotifier interface {
	BookingConfirmed(booking *models.Booking)
	BookingCancelled(booking *models.Booking)
}

type CreateBookingInput struct {
	ScheduleID  uint
	BookingDate time.Time
	Notes       string
}

type BookingService struct {
	memberships MembershipChecker
	schedules   ScheduleStore
	bookings    BookingStore
	tx          Transactor
	events      Publisher
	notifier    BookingNotifier
	logger      *zap.Logger
	now         func() time.Time
}

func NewBookingService(
	memberships MembershipChecker,
	schedules ScheduleStore,
	bookings BookingStore,
	tx Transactor,
	events Publisher,
	notifier BookingNotifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		memberships: memberships,
		schedules:   schedules,
		bookings:    bookings,
		tx:          tx,
		events:      events,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Create books a seat for userID. The checks run in a fixed order and the
// first failing one decides the error. The seat is taken with a conditional
// increment inside the same transaction as the booking insert, so the
// occupancy counter cannot pass capacity under concurrent requests.
func (s *BookingService) Create(ctx context.Context, userID uint, input CreateBookingInput) (*models.Booking, error) {
	booking, err := s.create(ctx, userID, input)
	if err != nil {
		recordRejection(err)
		return nil, err
	}

	bookingsCreated.Inc()
	s.logger.Info("Class booked",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("user_id", userID),
		zap.Uint("schedule_id", input.ScheduleID),
		zap.String("booking_date", booking.BookingDate.Format(models.DateLayout)),
	)
	s.publish(ctx, EventBookingCreated, booking)
	s.notifier.BookingConfirmed(booking)

	return booking, nil
}

func (s *BookingService) create(ctx context.Context, userID uint, input CreateBookingInput) (*models.Booking, error) {
	hasMembership, err := s.memberships.HasActive(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !hasMembership {
		return nil, ErrMembershipRequired
	}

	schedule, err := s.schedules.FindByID(ctx, input.ScheduleID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrScheduleUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if !schedule.IsActive {
		return nil, ErrScheduleUnavailable
	}
	if schedule.IsFull() {
		return nil, ErrClassFull
	}

	date := models.DateOnly(input.BookingDate)
	existing, err := s.bookings.FindByKey(ctx, userID, schedule.ID, date)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		existing = nil
	case err != nil:
		return nil, fmt.Errorf("check existing booking: %w", err)
	case existing.Status != models.BookingStatusCancelled:
		return nil, ErrDuplicateBooking
	}

	var bookingID uint
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		reserved, err := s.schedules.ReserveSeat(ctx, schedule.ID)
		if err != nil {
			return fmt.Errorf("reserve seat: %w", err)
		}
		if !reserved {
			return ErrClassFull
		}

		if existing != nil {
			// The unique index covers cancelled rows too, so rebooking
			// reuses the old row.
			bookingID = existing.ID
			err = s.bookings.Reactivate(ctx, existing.ID, input.Notes)
		} else {
			booking := &models.Booking{
				UserID:      userID,
				ScheduleID:  schedule.ID,
				BookingDate: date,
				Status:      models.BookingStatusConfirmed,
				Notes:       input.Notes,
			}
			err = s.bookings.Create(ctx, booking)
			bookingID = booking.ID
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateBooking
		}
		if err != nil {
			return fmt.Errorf("save booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.FindDetailed(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return booking, nil
}

// Cancel cancels one of userID's bookings and gives its seat back.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.cancel(ctx, userID, bookingID)
	if err != nil {
		recordRejection(err)
		return nil, err
	}

	bookingsCancelled.Inc()
	s.logger.Info("Booking cancelled",
		zap.Uint("booking_id", booking.ID),
		zap.Uint("user_id", userID),
		zap.Uint("schedule_id", booking.ScheduleID),
	)
	s.publish(ctx, EventBookingCancelled, booking)
	s.notifier.BookingCancelled(booking)

	return booking, nil
}

func (s *BookingService) cancel(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookings.FindOwned(ctx, bookingID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		changed, err := s.bookings.MarkCancelled(ctx, booking.ID)
		if err != nil {
			return fmt.Errorf("mark cancelled: %w", err)
		}
		if !changed {
			return ErrAlreadyCancelled
		}

		released, err := s.schedules.ReleaseSeat(ctx, booking.ScheduleID)
		if err != nil {
			return fmt.Errorf("release seat: %w", err)
		}
		if !released {
			s.logger.Warn("Occupancy counter already at zero",
				zap.Uint("schedule_id", booking.ScheduleID),
				zap.Uint("booking_id", booking.ID),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detailed, err := s.bookings.FindDetailed(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return detailed, nil
}

// ListForUser returns the caller's bookings, optionally by status.
func (s *BookingService) ListForUser(ctx context.Context, userID uint, status models.BookingStatus) ([]models.Booking, error) {
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{UserID: userID, Status: status})
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return bookings, nil
}

// ListAll returns every booking, optionally by status and class date.
func (s *BookingService) ListAll(ctx context.Context, status models.BookingStatus, date *time.Time) ([]models.Booking, error) {
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{Status: status, Date: date})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *models.Booking) {
	event := NewBookingEvent(eventType, booking, s.now())
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish booking event",
			zap.String("type", eventType),
			zap.Uint("booking_id", booking.ID),
			zap.Error(err),
		)
	}
}
