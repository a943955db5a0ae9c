package repository

import (
	"context"
	"time"

	"github.com/fitzone/fitzone-backend/internal/models"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) ListPlans(ctx context.Context, activeOnly bool) ([]models.Membership, error) {
	query := conn(ctx, r.db)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var plans []models.Membership
	if err := query.Order("price ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *MembershipRepository) FindPlan(ctx context.Context, id uint) (*models.Membership, error) {
	var plan models.Membership
	if err := conn(ctx, r.db).First(&plan, id).Error; err != nil {
		return nil, translate(err)
	}
	return &plan, nil
}

func (r *MembershipRepository) CreatePlan(ctx context.Context, plan *models.Membership) error {
	return translate(conn(ctx, r.db).Create(plan).Error)
}

func (r *MembershipRepository) UpdatePlan(ctx context.Context, plan *models.Membership) error {
	return translate(conn(ctx, r.db).Save(plan).Error)
}

func (r *MembershipRepository) DeletePlan(ctx context.Context, id uint) error {
	db := conn(ctx, r.db)
	if err := ensureUnreferenced(db, &models.UserMembership{}, "membership_id", id); err != nil {
		return err
	}
	result := db.Delete(&models.Membership{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasActive reports whether the user holds at least one active membership
// whose end date is not before at.
func (r *MembershipRepository) HasActive(ctx context.Context, userID uint, at time.Time) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.UserMembership{}).
		Where("user_id = ? AND status = ? AND end_date >= ?", userID, models.UserMembershipActive, at).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MembershipRepository) CreateSubscription(ctx context.Context, sub *models.UserMembership) error {
	return translate(conn(ctx, r.db).Omit("User", "Membership").Create(sub).Error)
}

func (r *MembershipRepository) FindSubscription(ctx context.Context, id uint) (*models.UserMembership, error) {
	var sub models.UserMembership
	if err := conn(ctx, r.db).Preload("Membership").First(&sub, id).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (r *MembershipRepository) UpdateSubscription(ctx context.Context, sub *models.UserMembership) error {
	return translate(conn(ctx, r.db).Omit("User", "Membership").Save(sub).Error)
}

// ListSubscriptions returns user memberships, newest first. userID 0 and an
// empty status match all rows.
func (r *MembershipRepository) ListSubscriptions(ctx context.Context, userID uint, status models.UserMembershipStatus) ([]models.UserMembership, error) {
	query := conn(ctx, r.db).Preload("Membership")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var subs []models.UserMembership
	if err := query.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
