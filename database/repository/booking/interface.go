package bookingRepo

import (
	"context"

	"flavortable/database"
	"flavortable/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists confirmed reservations. FindByDateTime only sees
// non-cancelled records; the unique index on (date, time) for confirmed
// records is the authoritative double-booking guard.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (string, error)
	FindByDateTime(ctx context.Context, date, timeOfDay string) (*models.Booking, error)
	GetAll(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetConfirmedByDate(ctx context.Context, date string) ([]models.Booking, error)
	CancelByID(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a new BookingRepository instance using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("flavortable")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
