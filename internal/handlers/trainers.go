package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/fitzone/fitzone-backend/internal/middleware"
	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TrainerStore interface {
	List(ctx context.Context, page repository.Page, activeOnly bool) ([]models.Trainer, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Trainer, error)
	Create(ctx context.Context, trainer *models.Trainer) error
	Update(ctx context.Context, trainer *models.Trainer) error
	Delete(ctx context.Context, id uint) error
}

// ImageStorage stores uploaded pictures and hands back their public URL.
type ImageStorage interface {
	UploadImage(file *multipart.FileHeader, folder string) (string, error)
	DeleteImage(imageURL string) error
}

type TrainerInput struct {
	Name            string   `json:"name" binding:"required,max=100"`
	Email           string   `json:"email" binding:"required,email"`
	Phone           string   `json:"phone" binding:"max=30"`
	Specialization  string   `json:"specialization" binding:"required,max=100"`
	Bio             string   `json:"bio" binding:"max=2000"`
	ExperienceYears int      `json:"experienceYears" binding:"gte=0,lte=60"`
	Certifications  []string `json:"certifications" binding:"omitempty,dive,required,max=200"`
	IsActive        *bool    `json:"isActive"`
}

func (in TrainerInput) apply(t *models.Trainer) {
	t.Name = in.Name
	t.Email = in.Email
	t.Phone = in.Phone
	t.Specialization = in.Specialization
	t.Bio = in.Bio
	t.ExperienceYears = in.ExperienceYears
	t.Certifications = models.StringList(in.Certifications)
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
}

func ListTrainers(trainers TrainerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := pageFromQuery(c)
		list, total, err := trainers.List(c.Request.Context(), page, true)
		if err != nil {
			serverError(c, err, "Failed to list trainers")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"trainers":   list,
			"pagination": newPagination(page, total),
		})
	}
}

func GetTrainer(trainers TrainerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		trainer, ok := loadTrainer(c, trainers)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"trainer": trainer})
	}
}

func loadTrainer(c *gin.Context, trainers TrainerStore) (*models.Trainer, bool) {
	id, ok := idParam(c, "trainerId", "Trainer not found")
	if !ok {
		return nil, false
	}
	trainer, err := trainers.FindByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		message(c, http.StatusNotFound, "Trainer not found")
		return nil, false
	}
	if err != nil {
		serverError(c, err, "Failed to load trainer")
		return nil, false
	}
	return trainer, true
}

func CreateTrainer(trainers TrainerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TrainerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		trainer := models.Trainer{IsActive: true}
		input.apply(&trainer)

		err := trainers.Create(c.Request.Context(), &trainer)
		if errors.Is(err, repository.ErrDuplicate) {
			message(c, http.StatusBadRequest, "A trainer with this email already exists")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to create trainer")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Trainer created successfully",
			"trainer": trainer,
		})
	}
}

func UpdateTrainer(trainers TrainerStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input TrainerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		trainer, ok := loadTrainer(c, trainers)
		if !ok {
			return
		}
		input.apply(trainer)

		err := trainers.Update(c.Request.Context(), trainer)
		if errors.Is(err, repository.ErrDuplicate) {
			message(c, http.StatusBadRequest, "A trainer with this email already exists")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to update trainer")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Trainer updated successfully",
			"trainer": trainer,
		})
	}
}

func DeleteTrainer(trainers TrainerStore, storage ImageStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		trainer, ok := loadTrainer(c, trainers)
		if !ok {
			return
		}

		err := trainers.Delete(c.Request.Context(), trainer.ID)
		if errors.Is(err, repository.ErrInUse) {
			message(c, http.StatusBadRequest, "Trainer still has schedules, remove them first")
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusNotFound, "Trainer not found")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to delete trainer")
			return
		}

		removeImage(c, storage, trainer.PhotoURL)
		message(c, http.StatusOK, "Trainer deleted successfully")
	}
}

func UploadTrainerPhoto(trainers TrainerStore, storage ImageStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("photo")
		if err != nil {
			invalidField(c, "photo", "is required")
			return
		}

		trainer, ok := loadTrainer(c, trainers)
		if !ok {
			return
		}

		url, err := storage.UploadImage(file, "trainers")
		if err != nil {
			invalidField(c, "photo", err.Error())
			return
		}

		previous := trainer.PhotoURL
		trainer.PhotoURL = url
		if err := trainers.Update(c.Request.Context(), trainer); err != nil {
			removeImage(c, storage, url)
			serverError(c, err, "Failed to save trainer photo")
			return
		}
		removeImage(c, storage, previous)

		c.JSON(http.StatusOK, gin.H{
			"message": "Photo uploaded successfully",
			"trainer": trainer,
		})
	}
}

// removeImage deletes a stored image, logging failures only.
func removeImage(c *gin.Context, storage ImageStorage, url string) {
	if url == "" {
		return
	}
	if err := storage.DeleteImage(url); err != nil {
		middleware.Logger(c).Warn("Failed to delete image", zap.String("url", url), zap.Error(err))
	}
}
