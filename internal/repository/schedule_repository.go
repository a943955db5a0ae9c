package repository

import (
	"context"

	"github.com/fitzone/fitzone-backend/internal/models"
	"gorm.io/gorm"
)

type ScheduleFilter struct {
	DayOfWeek  string
	Category   string
	TrainerID  uint
	ActiveOnly bool
}

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) List(ctx context.Context, filter ScheduleFilter) ([]models.Schedule, error) {
	query := conn(ctx, r.db).Preload("Trainer")
	if filter.DayOfWeek != "" {
		query = query.Where("day_of_week = ?", filter.DayOfWeek)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.TrainerID != 0 {
		query = query.Where("trainer_id = ?", filter.TrainerID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var schedules []models.Schedule
	err := query.
		Order("CASE day_of_week WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3 " +
			"WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5 WHEN 'Saturday' THEN 6 ELSE 7 END").
		Order("start_time").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := conn(ctx, r.db).Preload("Trainer").First(&schedule, id).Error; err != nil {
		return nil, translate(err)
	}
	return &schedule, nil
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	return translate(conn(ctx, r.db).Omit("Trainer").Create(schedule).Error)
}

// Update saves the editable fields. The occupancy counter is owned by
// ReserveSeat and ReleaseSeat and is never written here.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	return translate(conn(ctx, r.db).Omit("Trainer", "CurrentParticipants").Save(schedule).Error)
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)
	if err := ensureUnreferenced(db, &models.Booking{}, "schedule_id", id); err != nil {
		return err
	}
	result := db.Delete(&models.Schedule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReserveSeat increments the occupancy counter of an active schedule only
// while it is below capacity. It reports false when no seat was taken.
func (r *ScheduleRepository) ReserveSeat(ctx context.Context, id uint) (bool, error) {
	result := conn(ctx, r.db).Model(&models.Schedule{}).
		Where("id = ? AND is_active = ? AND current_participants < max_participants", id, true).
		UpdateColumn("current_participants", gorm.Expr("current_participants + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ReleaseSeat decrements the occupancy counter, never below zero. It
// reports false when the counter was already zero.
func (r *ScheduleRepository) ReleaseSeat(ctx context.Context, id uint) (bool, error) {
	result := conn(ctx, r.db).Model(&models.Schedule{}).
		Where("id = ? AND current_participants > 0", id).
		UpdateColumn("current_participants", gorm.Expr("current_participants - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
