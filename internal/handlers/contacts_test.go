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

type memContacts struct {
	contacts  []models.Contact
	gotStatus models.ContactStatus
	gotPage   repository.Page
}

func (m *memContacts) Create(_ context.Context, contact *models.Contact) error {
	contact.ID = uint(len(m.contacts) + 1)
	m.contacts = append(m.contacts, *contact)
	return nil
}

func (m *memContacts) List(_ context.Context, page repository.Page, status models.ContactStatus) ([]models.Contact, int64, error) {
	m.gotPage = page
	m.gotStatus = status
	return m.contacts, int64(len(m.contacts)), nil
}

func (m *memContacts) UpdateStatus(_ context.Context, id uint, status models.ContactStatus) (*models.Contact, error) {
	for i := range m.contacts {
		if m.contacts[i].ID == id {
			m.contacts[i].Status = status
			return &m.contacts[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func contactRouter(store ContactStore) *gin.Engine {
	r := gin.New()
	r.Use(as(testAdmin))
	r.POST("/api/contact", CreateContact(store))
	r.GET("/api/contact", ListContacts(store))
	r.PUT("/api/contact/:contactId/status", UpdateContactStatus(store))
	return r
}

func TestContactFlow(t *testing.T) {
	store := &memContacts{}
	r := contactRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Opening hours",
		"message": "Are you open on Sundays?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "new", decode(t, w)["contact"].(map[string]interface{})["status"])

	w = doJSON(t, r, http.MethodGet, "/api/contact?status=new&limit=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ContactStatusNew, store.gotStatus)
	assert.Equal(t, repository.MaxLimit, store.gotPage.Limit)
	assert.Equal(t, float64(1), decode(t, w)["pagination"].(map[string]interface{})["total"])

	w = doJSON(t, r, http.MethodPut, "/api/contact/1/status", map[string]string{"status": "replied"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ContactStatusReplied, store.contacts[0].Status)

	w = doJSON(t, r, http.MethodPut, "/api/contact/1/status", map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/contact/9/status", map[string]string{"status": "read"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/contact?status=spam", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateContactValidation(t *testing.T) {
	r := contactRouter(&memContacts{})

	w := doJSON(t, r, http.MethodPost, "/api/contact", map[string]string{"name": "Visitor", "email": "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	fields := map[string]string{}
	for _, e := range decode(t, w)["errors"].([]interface{}) {
		entry := e.(map[string]interface{})
		fields[entry["field"].(string)] = entry["message"].(string)
	}
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "is required", fields["subject"])
	assert.Equal(t, "is required", fields["message"])
}
