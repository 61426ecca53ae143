package models

import "time"

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Seating areas.
const (
	SeatingIndoor  = "indoor"
	SeatingOutdoor = "outdoor"
)

// Booking represents a confirmed reservation record.
type Booking struct {
	ID               string           `bson:"id" json:"id"`                               // Unique booking identifier (UUID)
	GuestName        string           `bson:"guest_name" json:"guestName"`                // Defaults to "Guest"
	NumberOfGuests   int              `bson:"number_of_guests" json:"numberOfGuests"`     // Party size
	Date             string           `bson:"date" json:"date"`                           // Booking date in "YYYY-MM-DD" format
	Time             string           `bson:"time" json:"time"`                           // 24-hour "HH:MM"
	Cuisine          string           `bson:"cuisine" json:"cuisine"`                     // Defaults to "Any"
	SpecialRequests  string           `bson:"special_requests" json:"specialRequests"`    // Defaults to "None"
	SeatingArea      string           `bson:"seating_area" json:"seatingArea"`            // "indoor" or "outdoor"
	WeatherCondition string           `bson:"weather_condition" json:"weatherCondition"`  // Coarse condition at decision time, "Unknown" if unavailable
	Weather          *WeatherSnapshot `bson:"weather,omitempty" json:"weather,omitempty"` // Full snapshot when the lookup succeeded
	Status           string           `bson:"status" json:"status"`                       // "confirmed" or "cancelled"
	CreatedAt        time.Time        `bson:"created_at" json:"createdAt"`                // Timestamp when booking was created
}
