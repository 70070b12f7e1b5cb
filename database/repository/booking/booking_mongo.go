package booking

import (
	"context"
	"fmt"
	"time"

	"glambook/database"
	"glambook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "agent_bookings"

// MongoBookingRepo is the Mongo-backed booking repository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo uses the global client's configured database.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.Collection(collectionName)}
}

func (r *MongoBookingRepo) SavePending(ctx context.Context, b *models.Booking) error {
	// One pending booking per session: the confirmation step may run more
	// than once when the user edits details after a failed OTP.
	filter := bson.M{"session_id": b.SessionID, "status": models.BookingStatusPending}
	update := bson.M{"$set": b}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("save booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) MarkVerified(ctx context.Context, sessionID string) (string, error) {
	filter := bson.M{"session_id": sessionID, "status": models.BookingStatusPending}
	update := bson.M{"$set": bson.M{
		"otp_verified": true,
		"status":       models.BookingStatusConfirmed,
		"stage":        string(models.StateCompleted),
		"updated_at":   time.Now().UTC(),
	}}
	var updated models.Booking
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("verify booking: %w", err)
	}
	return updated.BookingID, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) List(ctx context.Context, status string, limit, offset int64) ([]models.Booking, error) {
	filter := bson.M{"source": models.BookingSource}
	if status != "" {
		filter["status"] = status
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return out, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"booking_id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
