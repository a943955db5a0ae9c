package services

import (
	"github.com/fitzone/fitzone-backend/internal/models"
	"github.com/fitzone/fitzone-backend/pkg/utils"
	"go.uber.org/zap"
)

// BookingMailer is the subset of utils.Mailer used for booking emails.
type BookingMailer interface {
	SendBookingConfirmation(b utils.BookingEmail) error
	SendBookingCancellation(b utils.BookingEmail) error
}

// EmailNotifier emails members about their bookings. Sending happens in the
// background and failures are only logged.
type EmailNotifier struct {
	mailer BookingMailer
	logger *zap.Logger
}

func NewEmailNotifier(mailer BookingMailer, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, logger: logger}
}

func (n *EmailNotifier) BookingConfirmed(booking *models.Booking) {
	n.dispatch("confirmation", booking, n.mailer.SendBookingConfirmation)
}

func (n *EmailNotifier) BookingCancelled(booking *models.Booking) {
	n.dispatch("cancellation", booking, n.mailer.SendBookingCancellation)
}

func (n *EmailNotifier) dispatch(kind string, booking *models.Booking, send func(utils.BookingEmail) error) {
	email, ok := bookingEmail(booking)
	if !ok {
		return
	}
	go func() {
		if err := send(email); err != nil {
			n.logger.Warn("Failed to send booking email",
				zap.String("kind", kind),
				zap.Uint("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}()
}

func bookingEmail(booking *models.Booking) (utils.BookingEmail, bool) {
	if booking.User == nil || booking.Schedule == nil || booking.User.Email == "" {
		return utils.BookingEmail{}, false
	}
	return utils.BookingEmail{
		To:         booking.User.Email,
		Name:       booking.User.Name,
		ClassTitle: booking.Schedule.Title,
		Date:       booking.BookingDate.Format(models.DateLayout),
		StartTime:  booking.Schedule.StartTime,
		EndTime:    booking.Schedule.EndTime,
		Room:       booking.Schedule.Room,
	}, true
}

// NopNotifier is used when SMTP is not configured.
type NopNotifier struct{}

func (NopNotifier) BookingConfirmed(*models.Booking) {}
func (NopNotifier) BookingCancelled(*models.Booking) {}
