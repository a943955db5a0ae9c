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

type memSchedules struct {
	schedules map[uint]*models.Schedule
	nextID    uint
	gotFilter repository.ScheduleFilter
}

func (m *memSchedules) List(_ context.Context, filter repository.ScheduleFilter) ([]models.Schedule, error) {
	m.gotFilter = filter
	var out []models.Schedule
	for _, s := range m.schedules {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memSchedules) FindByID(_ context.Context, id uint) (*models.Schedule, error) {
	s, ok := m.schedules[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memSchedules) Create(_ context.Context, schedule *models.Schedule) error {
	m.nextID++
	schedule.ID = m.nextID
	copied := *schedule
	m.schedules[schedule.ID] = &copied
	return nil
}

func (m *memSchedules) Update(_ context.Context, schedule *models.Schedule) error {
	copied := *schedule
	copied.CurrentParticipants = m.schedules[schedule.ID].CurrentParticipants
	m.schedules[schedule.ID] = &copied
	return nil
}

func (m *memSchedules) Delete(_ context.Context, id uint) error {
	if _, ok := m.schedules[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.schedules, id)
	return nil
}

func scheduleRouter(schedules ScheduleCatalog, trainers TrainerLookup) *gin.Engine {
	r := gin.New()
	r.Use(as(testAdmin))
	r.GET("/api/schedules", ListSchedules(schedules))
	r.POST("/api/schedules", CreateSchedule(schedules, trainers))
	r.PUT("/api/schedules/:scheduleId", UpdateSchedule(schedules, trainers))
	r.DELETE("/api/schedules/:scheduleId", DeleteSchedule(schedules))
	return r
}

func validScheduleInput() map[string]interface{} {
	return map[string]interface{}{
		"title":           "Spin",
		"trainerId":       1,
		"dayOfWeek":       "Tuesday",
		"startTime":       "18:00",
		"endTime":         "19:00",
		"maxParticipants": 12,
		"category":        "cardio",
	}
}

func TestCreateSchedule(t *testing.T) {
	schedules := &memSchedules{schedules: map[uint]*models.Schedule{}}
	trainers := newMemTrainers(models.Trainer{ID: 1, Name: "Sam", IsActive: true})
	r := scheduleRouter(schedules, trainers)

	w := doJSON(t, r, http.MethodPost, "/api/schedules", validScheduleInput())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := schedules.schedules[1]
	assert.Equal(t, 0, created.CurrentParticipants)
	assert.Equal(t, models.DifficultyBeginner, created.Difficulty)
	assert.True(t, created.IsActive)

	tests := []struct {
		name  string
		field string
		value interface{}
	}{
		{"bad weekday", "dayOfWeek", "Someday"},
		{"bad start time", "startTime", "6pm"},
		{"end before start", "endTime", "17:00"},
		{"zero capacity", "maxParticipants", 0},
		{"unknown trainer", "trainerId", 42},
		{"bad difficulty", "difficulty", "extreme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validScheduleInput()
			input[tt.field] = tt.value
			w := doJSON(t, r, http.MethodPost, "/api/schedules", input)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			errs := decode(t, w)["errors"].([]interface{})
			assert.Equal(t, tt.field, errs[0].(map[string]interface{})["field"])
		})
	}
}

func TestUpdateScheduleKeepsCounter(t *testing.T) {
	schedules := &memSchedules{schedules: map[uint]*models.Schedule{
		1: {ID: 1, Title: "Spin", TrainerID: 1, DayOfWeek: "Tuesday", StartTime: "18:00", EndTime: "19:00", MaxParticipants: 12, CurrentParticipants: 5, IsActive: true},
	}, nextID: 1}
	trainers := newMemTrainers(models.Trainer{ID: 1, Name: "Sam"})
	r := scheduleRouter(schedules, trainers)

	input := validScheduleInput()
	input["maxParticipants"] = 4
	w := doJSON(t, r, http.MethodPut, "/api/schedules/1", input)
	require.Equal(t, http.StatusBadRequest, w.Code)

	input["maxParticipants"] = 20
	input["title"] = "Spin Plus"
	w = doJSON(t, r, http.MethodPut, "/api/schedules/1", input)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Spin Plus", schedules.schedules[1].Title)
	assert.Equal(t, 20, schedules.schedules[1].MaxParticipants)
	assert.Equal(t, 5, schedules.schedules[1].CurrentParticipants)
}

func TestListSchedulesFilters(t *testing.T) {
	schedules := &memSchedules{schedules: map[uint]*models.Schedule{}}
	r := scheduleRouter(schedules, newMemTrainers())

	w := doJSON(t, r, http.MethodGet, "/api/schedules?day=Monday&category=yoga&trainer=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, repository.ScheduleFilter{DayOfWeek: "Monday", Category: "yoga", TrainerID: 3, ActiveOnly: true}, schedules.gotFilter)

	w = doJSON(t, r, http.MethodGet, "/api/schedules?trainer=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
