package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/gin-gonic/gin"
)

type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context, page repository.Page, status models.ContactStatus) ([]models.Contact, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ContactStatus) (*models.Contact, error)
}

type ContactInput struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=30"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

type ContactStatusInput struct {
	Status models.ContactStatus `json:"status" binding:"required,oneof=new read replied"`
}

func CreateContact(contacts ContactStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		contact := models.Contact{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			Subject: input.Subject,
			Message: input.Message,
			Status:  models.ContactStatusNew,
		}
		if err := contacts.Create(c.Request.Context(), &contact); err != nil {
			serverError(c, err, "Failed to save contact message")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Message sent successfully",
			"contact": contact,
		})
	}
}

func ListContacts(contacts ContactStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := models.ContactStatus(c.Query("status"))
		switch status {
		case "", models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusReplied:
		default:
			invalidField(c, "status", "must be one of: new, read, replied")
			return
		}

		page := pageFromQuery(c)
		list, total, err := contacts.List(c.Request.Context(), page, status)
		if err != nil {
			serverError(c, err, "Failed to list contact messages")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"contacts":   list,
			"pagination": newPagination(page, total),
		})
	}
}

func UpdateContactStatus(contacts ContactStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		id, ok := idParam(c, "contactId", "Contact message not found")
		if !ok {
			return
		}

		contact, err := contacts.UpdateStatus(c.Request.Context(), id, input.Status)
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusNotFound, "Contact message not found")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to update contact message")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Status updated successfully",
			"contact": contact,
		})
	}
}
