package repository

import (
	"context"
	"fmt"
	"stayspot/pkg/config"
	mongotx "stayspot/pkg/db/mongo"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const LocksCollectionName = "Booking_locks"

// BookingLockRepository keeps one ledger document per spot. Every booking
// write touches it inside its transaction, so two writers on the same spot
// hit a write conflict and the driver retries one of them against the
// other's committed state. Review and spot image creation touch it too, which
// orders them against the spot delete cascade that removes it.
type BookingLockRepository interface {
	Touch(ctx context.Context, spotID string) error
	Delete(ctx context.Context, spotID string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LocksCollectionName),
	}
}

func (r *mongoBookingLockRepository) Touch(ctx context.Context, spotID string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"version": 1},
		"$set": bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": spotID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to touch booking ledger: %w", err)
	}
	return nil
}

// Delete drops the ledger of a spot. Missing ledgers are not an error since
// a spot that was never booked has none.
func (r *mongoBookingLockRepository) Delete(ctx context.Context, spotID string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": spotID}); err != nil {
		return fmt.Errorf("failed to delete booking ledger: %w", err)
	}
	return nil
}
