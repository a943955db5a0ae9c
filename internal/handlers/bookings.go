package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fitzone/fitzone-backend/internal/middleware"
	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/internal/services"
	"github.com/fitzone/fitzone-backend/internal/validation"
	"github.com/gin-gonic/gin"
)

type BookingManager interface {
	Create(ctx context.Context, userID uint, input services.CreateBookingInput) (*models.Booking, error)
	Cancel(ctx context.Context, userID, bookingID uint) (*models.Booking, error)
	ListForUser(ctx context.Context, userID uint, status models.BookingStatus) ([]models.Booking, error)
	ListAll(ctx context.Context, status models.BookingStatus, date *time.Time) ([]models.Booking, error)
}

type CreateBookingInput struct {
	ScheduleID  uint   `json:"scheduleId" binding:"required"`
	BookingDate string `json:"bookingDate" binding:"required,notpast"`
	Notes       string `json:"notes" binding:"max=500"`
}

// bookingRejection maps workflow errors to their HTTP status and message.
func bookingRejection(err error) (int, string, bool) {
	switch {
	case errors.Is(err, services.ErrMembershipRequired):
		return http.StatusForbidden, "Active membership required to book classes", true
	case errors.Is(err, services.ErrScheduleUnavailable):
		return http.StatusNotFound, "Schedule not found or inactive", true
	case errors.Is(err, services.ErrClassFull):
		return http.StatusBadRequest, "Class is full", true
	case errors.Is(err, services.ErrDuplicateBooking):
		return http.StatusBadRequest, "You have already booked this class for this date", true
	case errors.Is(err, services.ErrBookingNotFound):
		return http.StatusNotFound, "Booking not found", true
	case errors.Is(err, services.ErrAlreadyCancelled):
		return http.StatusBadRequest, "Booking is already cancelled", true
	default:
		return 0, "", false
	}
}

func bookingStatusQuery(c *gin.Context) (models.BookingStatus, bool) {
	status := models.BookingStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		invalidField(c, "status", "must be one of: confirmed, cancelled, completed, no-show")
		return "", false
	}
	return status, true
}

func GetMyBookings(bookings BookingManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, ok := bookingStatusQuery(c)
		if !ok {
			return
		}

		list, err := bookings.ListForUser(c.Request.Context(), middleware.CurrentUserID(c), status)
		if err != nil {
			serverError(c, err, "Failed to list user bookings")
			return
		}

		c.JSON(http.StatusOK, gin.H{"bookings": models.BookingViews(list, false)})
	}
}

func CreateBooking(bookings BookingManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			validationFailed(c, err)
			return
		}

		date, err := validation.ParseDate(input.BookingDate)
		if err != nil {
			invalidField(c, "bookingDate", err.Error())
			return
		}

		booking, err := bookings.Create(c.Request.Context(), middleware.CurrentUserID(c), services.CreateBookingInput{
			ScheduleID:  input.ScheduleID,
			BookingDate: date,
			Notes:       input.Notes,
		})
		if status, msg, ok := bookingRejection(err); ok {
			message(c, status, msg)
			return
		}
		if err != nil {
			serverError(c, err, "Failed to create booking")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Class booked successfully",
			"booking": booking.View(false),
		})
	}
}

func CancelBooking(bookings BookingManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := idParam(c, "bookingId", "Booking not found")
		if !ok {
			return
		}

		booking, err := bookings.Cancel(c.Request.Context(), middleware.CurrentUserID(c), bookingID)
		if status, msg, ok := bookingRejection(err); ok {
			message(c, status, msg)
			return
		}
		if err != nil {
			serverError(c, err, "Failed to cancel booking")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Booking cancelled successfully",
			"booking": booking.View(false),
		})
	}
}

// ListBookings is the admin listing across all members.
func ListBookings(bookings BookingManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, ok := bookingStatusQuery(c)
		if !ok {
			return
		}

		var date *time.Time
		if raw := c.Query("date"); raw != "" {
			parsed, err := validation.ParseDate(raw)
			if err != nil {
				invalidField(c, "date", err.Error())
				return
			}
			date = &parsed
		}

		list, err := bookings.ListAll(c.Request.Context(), status, date)
		if err != nil {
			serverError(c, err, "Failed to list bookings")
			return
		}

		c.JSON(http.StatusOK, gin.H{"bookings": models.BookingViews(list, true)})
	}
}
