// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"flavortable/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on booking ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Partial unique index: at most one confirmed booking per (date, time).
		// This is the authoritative guard for the check-then-insert window;
		// the pre-check in the finalizer is only a fast path for a friendlier
		// reprompt.
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_confirmed_date_time").
				SetPartialFilterExpression(bson.D{
					{Key: "status", Value: models.BookingStatusConfirmed},
				}),
		},
		// Listing pattern: newest first.
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_idx"),
		},
		// Reminder pattern: confirmed bookings by date.
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("date_status_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
