package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fitzone/fitzone-backend/internal/middleware"
	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/fitzone/fitzone-backend/internal/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MembershipStore interface {
	ListPlans(ctx context.Context, activeOnly bool) ([]models.Membership, error)
	FindPlan(ctx context.Context, id uint) (*models.Membership, error)
	CreatePlan(ctx context.Context, plan *models.Membership) error
	UpdatePlan(ctx context.Context, plan *models.Membership) error
	DeletePlan(ctx context.Context, id uint) error
	CreateSubscription(ctx context.Context, sub *models.UserMembership) error
	FindSubscription(ctx context.Context, id uint) (*models.UserMembership, error)
	UpdateSubscription(ctx context.Context, sub *models.UserMembership) error
	ListSubscriptions(ctx context.Context, userID uint, status models.UserMembershipStatus) ([]models.UserMembership, error)
}

type MembershipInput struct {
	Name           string   `json:"name" binding:"required,max=100"`
	Description    string   `json:"description" binding:"max=1000"`
	Price          float64  `json:"price" binding:"gte=0"`
	DurationMonths int      `json:"durationMonths" binding:"required,min=1,max=120"`
	Features       []string `json:"features" binding:"omitempty,dive,required,max=200"`
	IsActive       *bool    `json:"isActive"`
}

func (in MembershipInput) apply(m *models.Membership) {
	m.Name = in.Name
	m.Description = in.Description
	m.Price = in.Price
	m.DurationMonths = in.DurationMonths
	m.Features = models.StringList(in.Features)
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
}

type SubscribeInput struct {
	StartDate string `json:"startDate" binding:"omitempty,notpast"`
}

type SubscriptionStatusInput struct {
	Status        models.UserMembershipStatus `json:"status" binding:"omitempty,oneof=pending active expired cancelled"`
	PaymentStatus models.PaymentStatus        `json:"paymentStatus" binding:"omitempty,oneof=pending paid failed refunded"`
}

func ListMemberships(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := memberships.ListPlans(c.Request.Context(), true)
		if err != nil {
			serverError(c, err, "Failed to list memberships")
			return
		}
		c.JSON(http.StatusOK, gin.H{"memberships": plans})
	}
}

func loadPlan(c *gin.Context, memberships MembershipStore) (*models.Membership, bool) {
	id, ok := idParam(c, "membershipId", "Membership not found")
	if !ok {
		return nil, false
	}
	plan, err := memberships.FindPlan(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		message(c, http.StatusNotFound, "Membership not found")
		return nil, false
	}
	if err != nil {
		serverError(c, err, "Failed to load membership")
		return nil, false
	}
	return plan, true
}

func CreateMembership(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MembershipInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		plan := models.Membership{IsActive: true}
		input.apply(&plan)

		err := memberships.CreatePlan(c.Request.Context(), &plan)
		if errors.Is(err, repository.ErrDuplicate) {
			message(c, http.StatusBadRequest, "A membership with this name already exists")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to create membership")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    "Membership created successfully",
			"membership": plan,
		})
	}
}

func UpdateMembership(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MembershipInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		plan, ok := loadPlan(c, memberships)
		if !ok {
			return
		}
		input.apply(plan)

		err := memberships.UpdatePlan(c.Request.Context(), plan)
		if errors.Is(err, repository.ErrDuplicate) {
			message(c, http.StatusBadRequest, "A membership with this name already exists")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to update membership")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "Membership updated successfully",
			"membership": plan,
		})
	}
}

func DeleteMembership(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "membershipId", "Membership not found")
		if !ok {
			return
		}

		err := memberships.DeletePlan(c.Request.Context(), id)
		if errors.Is(err, repository.ErrInUse) {
			message(c, http.StatusBadRequest, "Membership has subscribers, deactivate it instead")
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusNotFound, "Membership not found")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to delete membership")
			return
		}

		message(c, http.StatusOK, "Membership deleted successfully")
	}
}

// Subscribe creates a pending subscription for the caller. An admin
// activates it once payment is confirmed.
func Subscribe(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubscribeInput
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				validationFailed(c, err)
				return
			}
		}

		plan, ok := loadPlan(c, memberships)
		if !ok {
			return
		}
		if !plan.IsActive {
			message(c, http.StatusBadRequest, "Membership is not available")
			return
		}

		start := time.Now().UTC()
		if input.StartDate != "" {
			date, err := validation.ParseDate(input.StartDate)
			if err != nil {
				invalidField(c, "startDate", err.Error())
				return
			}
			start = date
		}

		sub := models.NewUserMembership(middleware.CurrentUserID(c), plan, start)
		if err := memberships.CreateSubscription(c.Request.Context(), sub); err != nil {
			serverError(c, err, "Failed to create subscription")
			return
		}
		sub.Membership = plan

		middleware.Logger(c).Info("Membership subscription created",
			zap.Uint("user_id", sub.UserID),
			zap.Uint("membership_id", plan.ID),
		)
		c.JSON(http.StatusCreated, gin.H{
			"message":        "Subscription created, pending payment confirmation",
			"userMembership": sub,
		})
	}
}

func MyMemberships(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs, err := memberships.ListSubscriptions(c.Request.Context(), middleware.CurrentUserID(c), "")
		if err != nil {
			serverError(c, err, "Failed to list user memberships")
			return
		}
		c.JSON(http.StatusOK, gin.H{"userMemberships": subs})
	}
}

func ListSubscriptions(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.UserMembershipStatus(c.Query("status"))
		switch status {
		case "", models.UserMembershipPending, models.UserMembershipActive, models.UserMembershipExpired, models.UserMembershipCancelled:
		default:
			invalidField(c, "status", "must be one of: pending, active, expired, cancelled")
			return
		}

		subs, err := memberships.ListSubscriptions(c.Request.Context(), 0, status)
		if err != nil {
			serverError(c, err, "Failed to list subscriptions")
			return
		}
		c.JSON(http.StatusOK, gin.H{"userMemberships": subs})
	}
}

func UpdateSubscriptionStatus(memberships MembershipStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SubscriptionStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}
		if input.Status == "" && input.PaymentStatus == "" {
			invalidField(c, "status", "status or paymentStatus is required")
			return
		}

		id, ok := idParam(c, "id", "Subscription not found")
		if !ok {
			return
		}
		sub, err := memberships.FindSubscription(c.Request.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusNotFound, "Subscription not found")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to load subscription")
			return
		}

		if input.Status != "" {
			sub.Status = input.Status
		}
		if input.PaymentStatus != "" {
			sub.PaymentStatus = input.PaymentStatus
		}
		if err := memberships.UpdateSubscription(c.Request.Context(), sub); err != nil {
			serverError(c, err, "Failed to update subscription")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":        "Subscription updated successfully",
			"userMembership": sub,
		})
	}
}
