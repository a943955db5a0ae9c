package repository

import (
	"context"

	"github.com/fitzone/fitzone-backend/internal/models"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return translate(conn(ctx, r.db).Create(contact).Error)
}

func (r *ContactRepository) List(ctx context.Context, page Page, status models.ContactStatus) ([]models.Contact, int64, error) {
	query := conn(ctx, r.db).Model(&models.Contact{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var contacts []models.Contact
	if err := page.apply(query).Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id uint, status models.ContactStatus) (*models.Contact, error) {
	var contact models.Contact
	if err := conn(ctx, r.db).First(&contact, id).Error; err != nil {
		return nil, translate(err)
	}
	contact.Status = status
	if err := conn(ctx, r.db).Save(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}
