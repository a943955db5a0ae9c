package repository

import (
	"context"

	"github.com/fitzone/fitzone-backend/internal/models"
	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	query := conn(ctx, r.db)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var services []models.Service
	if err := query.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := conn(ctx, r.db).First(&service, id).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	return translate(conn(ctx, r.db).Create(service).Error)
}

func (r *ServiceRepository) Update(ctx context.Context, service *models.Service) error {
	return translate(conn(ctx, r.db).Save(service).Error)
}

func (r *ServiceRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&models.Service{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
