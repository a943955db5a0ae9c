package services

import "errors"

// Business-rule rejections. Each leaves the stored state untouched.
var (
	ErrMembershipRequired  = errors.New("active membership required")
	ErrScheduleUnavailable = errors.New("schedule not found or inactive")
	ErrClassFull           = errors.New("class is full")
	ErrDuplicateBooking    = errors.New("duplicate booking")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrAlreadyCancelled    = errors.New("booking already cancelled")
)

// rejectionReason labels a business-rule error for metrics. It returns ""
// for anything that is not a rejection.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrMembershipRequired):
		return "membership_required"
	case errors.Is(err, ErrScheduleUnavailable):
		return "schedule_unavailable"
	case errors.Is(err, ErrClassFull):
		return "class_full"
	case errors.Is(err, ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyCancelled):
		return "already_cancelled"
	default:
		return ""
	}
}
