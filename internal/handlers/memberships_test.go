package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memMemberships struct {
	plans map[uint]*models.Membership
	subs  map[uint]*models.UserMembership
	next  uint
}

func newMemMemberships(plans ...models.Membership) *memMemberships {
	m := &memMemberships{plans: map[uint]*models.Membership{}, subs: map[uint]*models.UserMembership{}}
	for i := range plans {
		p := plans[i]
		m.plans[p.ID] = &p
	}
	return m
}

func (m *memMemberships) ListPlans(_ context.Context, activeOnly bool) ([]models.Membership, error) {
	var out []models.Membership
	for _, p := range m.plans {
		if !activeOnly || p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memMemberships) FindPlan(_ context.Context, id uint) (*models.Membership, error) {
	p, ok := m.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memMemberships) CreatePlan(_ context.Context, plan *models.Membership) error {
	m.next++
	plan.ID = m.next
	copied := *plan
	m.plans[plan.ID] = &copied
	return nil
}

func (m *memMemberships) UpdatePlan(_ context.Context, plan *models.Membership) error {
	copied := *plan
	m.plans[plan.ID] = &copied
	return nil
}

func (m *memMemberships) DeletePlan(_ context.Context, id uint) error {
	for _, s := range m.subs {
		if s.MembershipID == id {
			return repository.ErrInUse
		}
	}
	delete(m.plans, id)
	return nil
}

func (m *memMemberships) CreateSubscription(_ context.Context, sub *models.UserMembership) error {
	m.next++
	sub.ID = m.next
	copied := *sub
	m.subs[sub.ID] = &copied
	return nil
}

func (m *memMemberships) FindSubscription(_ context.Context, id uint) (*models.UserMembership, error) {
	s, ok := m.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memMemberships) UpdateSubscription(_ context.Context, sub *models.UserMembership) error {
	copied := *sub
	m.subs[sub.ID] = &copied
	return nil
}

func (m *memMemberships) ListSubscriptions(_ context.Context, userID uint, status models.UserMembershipStatus) ([]models.UserMembership, error) {
	var out []models.UserMembership
	for _, s := range m.subs {
		if (userID == 0 || s.UserID == userID) && (status == "" || s.Status == status) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func membershipRouter(store MembershipStore, user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(as(user))
	r.POST("/api/memberships/:membershipId/subscribe", Subscribe(store))
	r.GET("/api/memberships/my", MyMemberships(store))
	r.PUT("/api/memberships/subscriptions/:id/status", UpdateSubscriptionStatus(store))
	r.DELETE("/api/memberships/:membershipId", DeleteMembership(store))
	return r
}

func TestSubscribeAndActivate(t *testing.T) {
	store := newMemMemberships(
		models.Membership{ID: 1, Name: "Monthly", DurationMonths: 1, Price: 49, IsActive: true},
		models.Membership{ID: 2, Name: "Legacy", DurationMonths: 12, IsActive: false},
	)
	store.next = 2

	member := membershipRouter(store, testMember)
	w := doJSON(t, member, http.MethodPost, "/api/memberships/1/subscribe", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sub := decode(t, w)["userMembership"].(map[string]interface{})
	assert.Equal(t, "pending", sub["status"])
	assert.Equal(t, "pending", sub["paymentStatus"])
	subID := uint(sub["id"].(float64))
	assert.Equal(t, testMember.ID, store.subs[subID].UserID)
	assert.Equal(t, store.subs[subID].StartDate.AddDate(0, 1, 0), store.subs[subID].EndDate)

	w = doJSON(t, member, http.MethodPost, "/api/memberships/2/subscribe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, member, http.MethodPost, "/api/memberships/1/subscribe", map[string]string{"startDate": "2000-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	admin := membershipRouter(store, testAdmin)
	w = doJSON(t, admin, http.MethodPut, "/api/memberships/subscriptions/3/status", map[string]string{"status": "active", "paymentStatus": "paid"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.UserMembershipActive, store.subs[subID].Status)
	assert.Equal(t, models.PaymentPaid, store.subs[subID].PaymentStatus)

	w = doJSON(t, admin, http.MethodPut, "/api/memberships/subscriptions/3/status", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, admin, http.MethodPut, "/api/memberships/subscriptions/3/status", map[string]string{"status": "frozen"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, member, http.MethodGet, "/api/memberships/my", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["userMemberships"], 1)

	w = doJSON(t, admin, http.MethodDelete, "/api/memberships/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
