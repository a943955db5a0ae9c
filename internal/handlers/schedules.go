package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/gin-gonic/gin"
)

type ScheduleCatalog interface {
	List(ctx context.Context, filter repository.ScheduleFilter) ([]models.Schedule, error)
	FindByID(ctx context.Context, id uint) (*models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id uint) error
}

// TrainerLookup checks that a schedule's trainer exists.
type TrainerLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Trainer, error)
}

type ScheduleInput struct {
	Title           string            `json:"title" binding:"required,max=100"`
	Description     string            `json:"description" binding:"max=1000"`
	TrainerID       uint              `json:"trainerId" binding:"required"`
	DayOfWeek       string            `json:"dayOfWeek" binding:"required,weekday"`
	StartTime       string            `json:"startTime" binding:"required,hhmm"`
	EndTime         string            `json:"endTime" binding:"required,hhmm"`
	MaxParticipants int               `json:"maxParticipants" binding:"required,min=1"`
	Room            string            `json:"room" binding:"max=50"`
	Difficulty      models.Difficulty `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category        string            `json:"category" binding:"required,max=50"`
	IsActive        *bool             `json:"isActive"`
}

func (in ScheduleInput) apply(s *models.Schedule) {
	s.Title = in.Title
	s.Description = in.Description
	s.TrainerID = in.TrainerID
	s.Trainer = nil
	s.DayOfWeek = in.DayOfWeek
	s.StartTime = in.StartTime
	s.EndTime = in.EndTime
	s.MaxParticipants = in.MaxParticipants
	s.Room = in.Room
	s.Difficulty = in.Difficulty
	if s.Difficulty == "" {
		s.Difficulty = models.DifficultyBeginner
	}
	s.Category = in.Category
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
}

// ListSchedules lists active schedules, filtered by ?day=, ?category= and
// ?trainer=.
func ListSchedules(schedules ScheduleCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.ScheduleFilter{
			DayOfWeek:  c.Query("day"),
			Category:   c.Query("category"),
			ActiveOnly: true,
		}
		if raw := c.Query("trainer"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				invalidField(c, "trainer", "must be a positive integer")
				return
			}
			filter.TrainerID = uint(id)
		}

		list, err := schedules.List(c.Request.Context(), filter)
		if err != nil {
			serverError(c, err, "Failed to list schedules")
			return
		}

		c.JSON(http.StatusOK, gin.H{"schedules": list})
	}
}

func GetSchedule(schedules ScheduleCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		schedule, ok := loadSchedule(c, schedules)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"schedule": schedule})
	}
}

func loadSchedule(c *gin.Context, schedules ScheduleCatalog) (*models.Schedule, bool) {
	id, ok := idParam(c, "scheduleId", "Schedule not found")
	if !ok {
		return nil, false
	}
	schedule, err := schedules.FindByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		message(c, http.StatusNotFound, "Schedule not found")
		return nil, false
	}
	if err != nil {
		serverError(c, err, "Failed to load schedule")
		return nil, false
	}
	return schedule, true
}

func bindSchedule(c *gin.Context, trainers TrainerLookup) (*ScheduleInput, bool) {
	var input ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationFailed(c, err)
		return nil, false
	}
	if input.EndTime <= input.StartTime {
		invalidField(c, "endTime", "must be after startTime")
		return nil, false
	}

	_, err := trainers.FindByID(c.Request.Context(), input.TrainerID)
	if errors.Is(err, repository.ErrNotFound) {
		invalidField(c, "trainerId", "trainer does not exist")
		return nil, false
	}
	if err != nil {
		serverError(c, err, "Failed to load trainer")
		return nil, false
	}
	return &input, true
}

func CreateSchedule(schedules ScheduleCatalog, trainers TrainerLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, ok := bindSchedule(c, trainers)
		if !ok {
			return
		}

		schedule := models.Schedule{IsActive: true}
		input.apply(&schedule)

		if err := schedules.Create(c.Request.Context(), &schedule); err != nil {
			serverError(c, err, "Failed to create schedule")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Schedule created successfully",
			"schedule": schedule,
		})
	}
}

func UpdateSchedule(schedules ScheduleCatalog, trainers TrainerLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, ok := bindSchedule(c, trainers)
		if !ok {
			return
		}

		schedule, ok := loadSchedule(c, schedules)
		if !ok {
			return
		}
		if input.MaxParticipants < schedule.CurrentParticipants {
			invalidField(c, "maxParticipants", "cannot be lower than the current number of participants")
			return
		}
		input.apply(schedule)

		if err := schedules.Update(c.Request.Context(), schedule); err != nil {
			serverError(c, err, "Failed to update schedule")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Schedule updated successfully",
			"schedule": schedule,
		})
	}
}

func DeleteSchedule(schedules ScheduleCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "scheduleId", "Schedule not found")
		if !ok {
			return
		}

		err := schedules.Delete(c.Request.Context(), id)
		if errors.Is(err, repository.ErrInUse) {
			message(c, http.StatusBadRequest, "Schedule has bookings, deactivate it instead")
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			message(c, http.StatusNotFound, "Schedule not found")
			return
		}
		if err != nil {
			serverError(c, err, "Failed to delete schedule")
			return
		}

		message(c, http.StatusOK, "Schedule deleted successfully")
	}
}
