package models

// ReminderPayload is the asynq task body for a day-of booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}
