package repository

import (
	"context"
	"time"

	"github.com/fitzone/fitzone-backend/internal/models"
	"gorm.io/gorm"
)

// BookingFilter narrows booking listings. Zero values match everything.
type BookingFilter struct {
	UserID uint
	Status models.BookingStatus
	Date   *time.Time
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// withDetails preloads the schedule with its trainer.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Schedule").Preload("Schedule.Trainer")
}

// FindByKey returns the booking for (user, schedule, date) in any status.
func (r *BookingRepository) FindByKey(ctx context.Context, userID, scheduleID uint, date time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := conn(ctx, r.db).
		Where("user_id = ? AND schedule_id = ? AND booking_date = ?", userID, scheduleID, models.DateOnly(date)).
		First(&booking).Error
	if err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.BookingDate = models.DateOnly(booking.BookingDate)
	return translate(conn(ctx, r.db).Create(booking).Error)
}

// Reactivate turns a cancelled booking back into a confirmed one. It
// reports ErrDuplicate when the booking is no longer cancelled.
func (r *BookingRepository) Reactivate(ctx context.Context, id uint, notes string) error {
	result := conn(ctx, r.db).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, models.BookingStatusCancelled).
		Updates(map[string]interface{}{
			"status":     models.BookingStatusConfirmed,
			"notes":      notes,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

// FindOwned looks a booking up by id, scoped to its owner.
func (r *BookingRepository) FindOwned(ctx context.Context, id, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&booking).Error
	if err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// MarkCancelled sets the status to cancelled unless it already is. It
// reports whether this call changed the row.
func (r *BookingRepository) MarkCancelled(ctx context.Context, id uint) (bool, error) {
	result := conn(ctx, r.db).Model(&models.Booking{}).
		Where("id = ? AND status <> ?", id, models.BookingStatusCancelled).
		Updates(map[string]interface{}{
			"status":     models.BookingStatusCancelled,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// FindDetailed loads a booking with its schedule, trainer and user.
func (r *BookingRepository) FindDetailed(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := withDetails(conn(ctx, r.db)).Preload("User").First(&booking, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// List returns bookings matching filter, newest class date first.
func (r *BookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	query := withDetails(conn(ctx, r.db))
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	} else {
		query = query.Preload("User")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		query = query.Where("booking_date = ?", models.DateOnly(*filter.Date))
	}

	var bookings []models.Booking
	if err := query.Order("booking_date DESC, created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
