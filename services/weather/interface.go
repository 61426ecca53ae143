// File: services/weather/interface.go
package weather

import (
	"context"
	"errors"

	"flavortable/models"
)

// ErrUnavailable marks a failed or missing forecast. Callers treat it as an
// absent snapshot; it never blocks a booking.
var ErrUnavailable = errors.New("weather unavailable")

// Service returns a best-effort forecast snapshot for a calendar date within
// the provider's forecast horizon.
type Service interface {
	Forecast(ctx context.Context, date string) (*models.WeatherSnapshot, error)
}
