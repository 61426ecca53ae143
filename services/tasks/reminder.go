package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"flavortable/config"
	"flavortable/models"

	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

// NewReminderTask builds the asynq task for a booking reminder scheduled at
// fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues day-of reminder tasks ahead of each confirmed
// booking.
type ReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewReminderScheduler connects an asynq client to the reminder queue DB.
func NewReminderScheduler() *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderScheduler{
		client: client,
		lead:   time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}
}

// ScheduleDayOfReminder enqueues a reminder to fire ahead of the booking
// time. Bookings already inside the lead window get no reminder.
func (s *ReminderScheduler) ScheduleDayOfReminder(booking models.Booking) error {
	bookingAt, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.Time, time.Local)
	if err != nil {
		return fmt.Errorf("parse booking time: %w", err)
	}

	fireAt := bookingAt.Add(-s.lead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		Date:      booking.Date,
		Time:      booking.Time,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}
