package repository

import (
	"context"

	"github.com/fitzone/fitzone-backend/internal/models"
	"gorm.io/gorm"
)

type TrainerRepository struct {
	db *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) *TrainerRepository {
	return &TrainerRepository{db: db}
}

func (r *TrainerRepository) List(ctx context.Context, page Page, activeOnly bool) ([]models.Trainer, int64, error) {
	query := conn(ctx, r.db).Model(&models.Trainer{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var trainers []models.Trainer
	if err := page.apply(query).Order("name ASC").Find(&trainers).Error; err != nil {
		return nil, 0, err
	}
	return trainers, total, nil
}

// FindByID loads a trainer with the active schedules they teach.
func (r *TrainerRepository) FindByID(ctx context.Context, id uint) (*models.Trainer, error) {
	var trainer models.Trainer
	err := conn(ctx, r.db).
		Preload("Schedules", "is_active = ?", true).
		First(&trainer, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &trainer, nil
}

func (r *TrainerRepository) Create(ctx context.Context, trainer *models.Trainer) error {
	return translate(conn(ctx, r.db).Omit("Schedules").Create(trainer).Error)
}

func (r *TrainerRepository) Update(ctx context.Context, trainer *models.Trainer) error {
	return translate(conn(ctx, r.db).Omit("Schedules").Save(trainer).Error)
}

func (r *TrainerRepository) Delete(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)
	if err := ensureUnreferenced(db, &models.Schedule{}, "trainer_id", id); err != nil {
		return err
	}
	result := db.Delete(&models.Trainer{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
