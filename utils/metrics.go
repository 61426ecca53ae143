// File: utils/metrics.go
package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatTurnsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Total number of conversation turns processed",
		},
	)

	BookingsConfirmedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Total number of bookings persisted",
		},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Total number of double-booking conflicts detected",
		},
	)

	ExtractionFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "extraction_failures_total",
			Help: "Total number of failed or unparseable extraction calls",
		},
	)

	WeatherLookupFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_lookup_failures_total",
			Help: "Total number of failed weather lookups",
		},
	)
)
