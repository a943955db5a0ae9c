package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/gin-gonic/gin"
)

// ServiceStore persists the services the gym offers (not to be confused
// with the internal/services package).
type ServiceStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
	FindByID(ctx context.Context, id uint) (*models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id uint) error
}

type ServiceInput struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Description     string  `json:"description" binding:"max=1000"`
	Price           float64 `json:"price" binding:"gte=0"`
	DurationMinutes int     `json:"durationMinutes" binding:"gte=0"`
	IsActive        *bool   `json:"isActive"`
}

func (in ServiceInput) apply(s *models.Service) {
	s.Name = in.Name
	s.Description = in.Description
	s.Price = in.Price
	s.DurationMinutes = in.DurationMinutes
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
}

func ListServices(store ServiceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := store.List(c.Request.Context(), true)
		if err != nil {
			serverError(c, err, "Failed to list services")
			return
		}
		c.JSON(http.StatusOK, gin.H{"services": list})
	}
}

func loadService(c *gin.Context, store ServiceStore) (*models.Service, bool) {
	id, ok := idParam(c, "serviceId", "Service not found")
	if !ok {
		return nil, false
	}
	service, err := store.FindByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		message(c, http.StatusNotFound, "Service not found")
		return nil, false
	}
	if err != nil {
		serverError(c, err, "Failed to load service")
		return nil, false
	}
	return service, true
}

func CreateService(store ServiceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ServiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		service := models.Service{IsActive: true}
		input.apply(&service)

		if err := store.Create(c.Request.Context(), &service); err != nil {
			serverError(c, err, "Failed to create service")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Service created successfully",
			"service": service,
		})
	}
}

func UpdateService(store ServiceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ServiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		service, ok := loadService(c, store)
		if !ok {
			return
		}
		input.apply(service)

		if err := store.Update(c.Request.Context(), service); err != nil {
			serverError(c, err, "Failed to update service")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Service updated successfully",
			"service": service,
		})
	}
}

func DeleteService(store ServiceStore, storage ImageStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		service, ok := loadService(c, store)
		if !ok {
			return
		}

		err := store.Delete(c.Request.Context(), service.ID)
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusNotFound, "Service not found")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to delete service")
			return
		}

		removeImage(c, storage, service.ImageURL)
		message(c, http.StatusOK, "Service deleted successfully")
	}
}

func UploadServiceImage(store ServiceStore, storage ImageStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			invalidField(c, "image", "is required")
			return
		}

		service, ok := loadService(c, store)
		if !ok {
			return
		}

		url, err := storage.UploadImage(file, "services")
		if err != nil {
			invalidField(c, "image", err.Error())
			return
		}

		previous := service.ImageURL
		service.ImageURL = url
		if err := store.Update(c.Request.Context(), service); err != nil {
			removeImage(c, storage, url)
			serverError(c, err, "Failed to save service image")
			return
		}
		removeImage(c, storage, previous)

		c.JSON(http.StatusOK, gin.H{
			"message": "Image uploaded successfully",
			"service": service,
		})
	}
}
