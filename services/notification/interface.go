// File: services/notification/interface.go
package notification

import (
	"context"

	"flavortable/models"
)

// Service delivers front-desk notifications about bookings. All sends are
// best-effort; a failure never unwinds a committed booking.
type Service interface {
	SendBookingConfirmation(ctx context.Context, booking models.Booking) error
	SendReminder(ctx context.Context, booking models.Booking) error
}
