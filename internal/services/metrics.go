package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitzone_bookings_created_total",
		Help: "Class bookings confirmed.",
	})
	bookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitzone_bookings_cancelled_total",
		Help: "Class bookings cancelled by their owner.",
	})
	bookingRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitzone_booking_rejections_total",
		Help: "Booking requests rejected by a business rule.",
	}, []string{"reason"})
)

func recordRejection(err error) {
	if reason := rejectionReason(err); reason != "" {
		bookingRejections.WithLabelValues(reason).Inc()
	}
}
