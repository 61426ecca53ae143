package bookingRepo

import (
	"context"
	"errors"
	"time"

	"flavortable/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a booking id does not match any record.
var ErrNotFound = errors.New("booking not found")

// ErrDuplicateDateTime is returned when an insert collides with the unique
// (date, time) index for confirmed bookings.
var ErrDuplicateDateTime = errors.New("a confirmed booking already exists for this date and time")

// Create inserts a new booking record and returns its ID.
func (r *mongoBookingRepo) Create(ctx context.Context, booking models.Booking) (string, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}
	booking.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateDateTime
		}
		return "", err
	}
	return booking.ID, nil
}

// FindByDateTime returns the confirmed booking occupying the exact
// (date, time) pair, or nil if the slot is free.
func (r *mongoBookingRepo) FindByDateTime(ctx context.Context, date, timeOfDay string) (*models.Booking, error) {
	filter := bson.M{
		"date":   date,
		"time":   timeOfDay,
		"status": models.BookingStatusConfirmed,
	}
	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetAll returns every booking, newest first.
func (r *mongoBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetByID returns a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetConfirmedByDate returns all confirmed bookings for a calendar date,
// ordered by time of day. Used by the day-of reminder worker.
func (r *mongoBookingRepo) GetConfirmedByDate(ctx context.Context, date string) ([]models.Booking, error) {
	filter := bson.M{"date": date, "status": models.BookingStatusConfirmed}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelByID transitions a booking to cancelled. The record is kept; the
// partial unique index then frees its (date, time) pair for rebooking.
func (r *mongoBookingRepo) CancelByID(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"status": models.BookingStatusCancelled}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
