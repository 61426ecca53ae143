// File: services/dialogue/slots.go
package dialogue

import (
	"regexp"

	"flavortable/models"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Merge reconciles a candidate slot set against the previously accumulated
// one. A known candidate field wins outright; an unknown candidate field
// preserves the prior value, so knowledge never regresses. Candidate values
// failing basic shape checks are demoted to unknown first, which keeps a
// malformed extraction from poisoning the state or aborting the turn. Pure
// function: no I/O, identical inputs give identical output.
func Merge(prior, candidate models.BookingDetails) models.BookingDetails {
	candidate = sanitize(candidate)

	merged := prior
	if candidate.NumberOfGuests != nil {
		merged.NumberOfGuests = candidate.NumberOfGuests
	}
	if candidate.Date != nil {
		merged.Date = candidate.Date
	}
	if candidate.Time != nil {
		merged.Time = candidate.Time
	}
	if candidate.Cuisine != nil {
		merged.Cuisine = candidate.Cuisine
	}
	if candidate.SpecialRequests != nil {
		merged.SpecialRequests = candidate.SpecialRequests
	}
	return merged
}

// sanitize demotes malformed values to unknown rather than failing.
func sanitize(d models.BookingDetails) models.BookingDetails {
	if d.NumberOfGuests != nil && *d.NumberOfGuests <= 0 {
		d.NumberOfGuests = nil
	}
	if d.Date != nil && !datePattern.MatchString(*d.Date) {
		d.Date = nil
	}
	if d.Time != nil && !timePattern.MatchString(*d.Time) {
		d.Time = nil
	}
	return d
}

// IsComplete reports whether the required slots are all known. Cuisine and
// special requests are optional.
func IsComplete(d models.BookingDetails) bool {
	return d.NumberOfGuests != nil && d.Date != nil && d.Time != nil
}

// MissingFields lists the required slots still unknown.
func MissingFields(d models.BookingDetails) []string {
	var missing []string
	if d.NumberOfGuests == nil {
		missing = append(missing, "numberOfGuests")
	}
	if d.Date == nil {
		missing = append(missing, "date")
	}
	if d.Time == nil {
		missing = append(missing, "time")
	}
	return missing
}
