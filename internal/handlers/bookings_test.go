package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookings struct {
	createErr error
	cancelErr error
	listErr   error

	gotUserID uint
	gotInput  services.CreateBookingInput
	gotStatus models.BookingStatus
	gotDate   *time.Time
	list      []models.Booking
}

func (f *fakeBookings) Create(_ context.Context, userID uint, input services.CreateBookingInput) (*models.Booking, error) {
	f.gotUserID = userID
	f.gotInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Booking{
		ID:          10,
		UserID:      userID,
		ScheduleID:  input.ScheduleID,
		BookingDate: input.BookingDate,
		Status:      models.BookingStatusConfirmed,
		Notes:       input.Notes,
		Schedule: &models.Schedule{
			ID:      input.ScheduleID,
			Title:   "Morning Yoga",
			Trainer: &models.Trainer{ID: 3, Name: "Sam", Email: "sam@example.com", Specialization: "Yoga"},
		},
	}, nil
}

func (f *fakeBookings) Cancel(_ context.Context, userID, bookingID uint) (*models.Booking, error) {
	f.gotUserID = userID
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &models.Booking{ID: bookingID, UserID: userID, Status: models.BookingStatusCancelled}, nil
}

func (f *fakeBookings) ListForUser(_ context.Context, userID uint, status models.BookingStatus) ([]models.Booking, error) {
	f.gotUserID = userID
	f.gotStatus = status
	return f.list, f.listErr
}

func (f *fakeBookings) ListAll(_ context.Context, status models.BookingStatus, date *time.Time) ([]models.Booking, error) {
	f.gotStatus = status
	f.gotDate = date
	return f.list, f.listErr
}

func bookingRouter(bookings BookingManager, user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(as(user))
	r.GET("/api/bookings/my-bookings", GetMyBookings(bookings))
	r.POST("/api/bookings", CreateBooking(bookings))
	r.PUT("/api/bookings/:bookingId/cancel", CancelBooking(bookings))
	r.GET("/api/bookings", ListBookings(bookings))
	return r
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 3).Format(models.DateLayout)
}

func TestCreateBookingHandler(t *testing.T) {
	fake := &fakeBookings{}
	r := bookingRouter(fake, testMember)
	date := futureDate()

	w := doJSON(t, r, http.MethodPost, "/api/bookings", map[string]interface{}{
		"scheduleId":  4,
		"bookingDate": date,
		"notes":       "bring a mat",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "Class booked successfully", body["message"])
	booking := body["booking"].(map[string]interface{})
	assert.Equal(t, date, booking["bookingDate"])
	assert.Equal(t, "confirmed", booking["status"])
	schedule := booking["schedule"].(map[string]interface{})
	trainer := schedule["trainer"].(map[string]interface{})
	assert.Equal(t, "Sam", trainer["name"])
	assert.NotContains(t, trainer, "email")
	assert.NotContains(t, booking, "user")

	assert.Equal(t, testMember.ID, fake.gotUserID)
	assert.Equal(t, uint(4), fake.gotInput.ScheduleID)
	assert.Equal(t, "bring a mat", fake.gotInput.Notes)
	assert.Equal(t, date, fake.gotInput.BookingDate.Format(models.DateLayout))
}

func TestCreateBookingHandlerValidation(t *testing.T) {
	fake := &fakeBookings{}
	r := bookingRouter(fake, testMember)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(models.DateLayout)
	longNotes := make([]byte, 501)
	for i := range longNotes {
		longNotes[i] = 'a'
	}

	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{name: "missing schedule", body: map[string]interface{}{"bookingDate": futureDate()}, field: "scheduleId"},
		{name: "missing date", body: map[string]interface{}{"scheduleId": 1}, field: "bookingDate"},
		{name: "past date", body: map[string]interface{}{"scheduleId": 1, "bookingDate": yesterday}, field: "bookingDate"},
		{name: "bad date", body: map[string]interface{}{"scheduleId": 1, "bookingDate": "next week"}, field: "bookingDate"},
		{name: "notes too long", body: map[string]interface{}{"scheduleId": 1, "bookingDate": futureDate(), "notes": string(longNotes)}, field: "notes"},
		{name: "malformed json", body: `{"scheduleId":`, field: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/bookings", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			body := decode(t, w)
			assert.Equal(t, "Validation failed", body["message"])
			errs := body["errors"].([]interface{})
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.field, errs[0].(map[string]interface{})["field"])
		})
	}
	assert.Zero(t, fake.gotUserID, "service must not be called")
}

func TestCreateBookingHandlerRejections(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{services.ErrMembershipRequired, http.StatusForbidden, "Active membership required to book classes"},
		{services.ErrScheduleUnavailable, http.StatusNotFound, "Schedule not found or inactive"},
		{services.ErrClassFull, http.StatusBadRequest, "Class is full"},
		{services.ErrDuplicateBooking, http.StatusBadRequest, "You have already booked this class for this date"},
		{errors.New("connection refused"), http.StatusInternalServerError, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			r := bookingRouter(&fakeBookings{createErr: tt.err}, testMember)
			w := doJSON(t, r, http.MethodPost, "/api/bookings", map[string]interface{}{
				"scheduleId":  4,
				"bookingDate": futureDate(),
			})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, map[string]interface{}{"message": tt.wantMsg}, decode(t, w))
		})
	}
}

func TestCancelBookingHandler(t *testing.T) {
	r := bookingRouter(&fakeBookings{}, testMember)
	w := doJSON(t, r, http.MethodPut, "/api/bookings/12/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Booking cancelled successfully", body["message"])
	assert.Equal(t, "cancelled", body["booking"].(map[string]interface{})["status"])

	tests := []struct {
		path       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"/api/bookings/12/cancel", services.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
		{"/api/bookings/12/cancel", services.ErrAlreadyCancelled, http.StatusBadRequest, "Booking is already cancelled"},
		{"/api/bookings/abc/cancel", nil, http.StatusNotFound, "Booking not found"},
	}
	for _, tt := range tests {
		r := bookingRouter(&fakeBookings{cancelErr: tt.err}, testMember)
		w := doJSON(t, r, http.MethodPut, tt.path, nil)
		assert.Equal(t, tt.wantStatus, w.Code)
		assert.Equal(t, tt.wantMsg, decode(t, w)["message"])
	}
}

func TestListBookingsHandlers(t *testing.T) {
	fake := &fakeBookings{list: []models.Booking{{
		ID:          5,
		UserID:      7,
		BookingDate: time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC),
		Status:      models.BookingStatusConfirmed,
		User:        testMember,
	}}}
	r := bookingRouter(fake, testAdmin)

	w := doJSON(t, r, http.MethodGet, "/api/bookings/my-bookings?status=confirmed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.BookingStatusConfirmed, fake.gotStatus)
	mine := decode(t, w)["bookings"].([]interface{})
	require.Len(t, mine, 1)
	assert.NotContains(t, mine[0], "user")

	w = doJSON(t, r, http.MethodGet, "/api/bookings?date=2030-01-07", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fake.gotDate)
	assert.Equal(t, "2030-01-07", fake.gotDate.Format(models.DateLayout))
	all := decode(t, w)["bookings"].([]interface{})
	require.Len(t, all, 1)
	user := all[0].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", user["email"])

	w = doJSON(t, r, http.MethodGet, "/api/bookings?status=pending", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/bookings?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBookingsEmptyIsArray(t *testing.T) {
	r := bookingRouter(&fakeBookings{}, testMember)
	w := doJSON(t, r, http.MethodGet, "/api/bookings/my-bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookings":[]}`, w.Body.String())
}
