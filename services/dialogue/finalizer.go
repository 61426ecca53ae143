// File: services/dialogue/finalizer.go
package dialogue

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "flavortable/database/repository/booking"
	"flavortable/models"
	"flavortable/services/notification"
	"flavortable/services/tasks"
	"flavortable/services/weather"
	"flavortable/utils"

	"go.uber.org/zap"
)

// FinalizeOutcome is the result of attempting to commit a complete slot set.
// Exactly one of the two branches holds: Booking is set when the reservation
// persisted, MissingFields names the slot to revisit when a conflict blocked
// it.
type FinalizeOutcome struct {
	Confirmed     bool
	Booking       *models.Booking
	Reply         string
	Slots         models.BookingDetails
	MissingFields []string
}

// BookingFinalizer commits a complete slot set: conflict check, best-effort
// weather lookup, seating decision, persist, confirmation text. Notifier and
// Reminders are optional; when set, a confirmed booking also emails the front
// desk and schedules a day-of reminder, both best-effort.
type BookingFinalizer struct {
	Repo      bookingRepo.BookingRepository
	Weather   weather.Service
	Notifier  notification.Service
	Reminders *tasks.ReminderScheduler
}

// Finalize runs the commit pipeline. It must only be called with a complete
// slot set. A returned error means the storage write failed after a clear
// conflict check; the caller keeps the slots so a retry is safe.
func (f *BookingFinalizer) Finalize(ctx context.Context, slots models.BookingDetails) (*FinalizeOutcome, error) {
	logger := utils.GetLogger()
	date, timeOfDay := *slots.Date, *slots.Time

	// Fast-path conflict check for a friendly reprompt. The unique index at
	// insert time remains the authoritative guard.
	existing, err := f.Repo.FindByDateTime(ctx, date, timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("availability check: %w", err)
	}
	if existing != nil {
		return f.conflictOutcome(slots, date, timeOfDay), nil
	}

	// Weather is best effort; absence only suppresses the rationale.
	snapshot, err := f.Weather.Forecast(ctx, date)
	if err != nil {
		utils.WeatherLookupFailuresTotal.Inc()
		logger.Warn("weather lookup failed, booking proceeds without it",
			zap.String("date", date), zap.Error(err))
		snapshot = nil
	}

	seating := DecideSeating(snapshot)

	booking := models.Booking{
		GuestName:        "Guest",
		NumberOfGuests:   *slots.NumberOfGuests,
		Date:             date,
		Time:             timeOfDay,
		Cuisine:          valueOrDefault(slots.Cuisine, "Any"),
		SpecialRequests:  valueOrDefault(slots.SpecialRequests, "None"),
		SeatingArea:      seating.Area,
		WeatherCondition: "Unknown",
		Weather:          snapshot,
		Status:           models.BookingStatusConfirmed,
	}
	if snapshot != nil {
		booking.WeatherCondition = snapshot.Condition
	}

	id, err := f.Repo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateDateTime) {
			// Another session won the check-then-insert window.
			logger.Info("insert lost the slot race, treating as conflict",
				zap.String("date", date), zap.String("time", timeOfDay))
			return f.conflictOutcome(slots, date, timeOfDay), nil
		}
		return nil, fmt.Errorf("persist booking: %w", err)
	}
	booking.ID = id
	utils.BookingsConfirmedTotal.Inc()

	reply := fmt.Sprintf("Booking confirmed for %d people on %s at %s.",
		booking.NumberOfGuests, booking.Date, booking.Time)
	if seating.Rationale != "" {
		reply += " " + seating.Rationale
	}

	f.notify(booking)

	return &FinalizeOutcome{
		Confirmed: true,
		Booking:   &booking,
		Reply:     reply,
		Slots:     slots,
	}, nil
}

func (f *BookingFinalizer) conflictOutcome(slots models.BookingDetails, date, timeOfDay string) *FinalizeOutcome {
	utils.BookingConflictsTotal.Inc()
	return &FinalizeOutcome{
		Confirmed: false,
		Reply: fmt.Sprintf("I'm sorry, we are fully booked at %s on %s. Can we try a different time?",
			timeOfDay, date),
		Slots:         slots,
		MissingFields: []string{"time"},
	}
}

// notify fires the front-desk email and the day-of reminder. Failures are
// logged and swallowed; the booking is already committed.
func (f *BookingFinalizer) notify(booking models.Booking) {
	logger := utils.GetLogger()
	if f.Notifier != nil {
		go func() {
			if err := f.Notifier.SendBookingConfirmation(context.Background(), booking); err != nil {
				logger.Warn("confirmation email failed", zap.String("bookingID", booking.ID), zap.Error(err))
			}
		}()
	}
	if f.Reminders != nil {
		if err := f.Reminders.ScheduleDayOfReminder(booking); err != nil {
			logger.Warn("reminder scheduling failed", zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
}

func valueOrDefault(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}
