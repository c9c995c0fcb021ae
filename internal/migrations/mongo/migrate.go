package mongo

import (
	"context"
	"fmt"
	bookingsrepo "stayspot/internal/bookings/repository"
	imagesrepo "stayspot/internal/images/repository"
	"stayspot/internal/migrations/mongo/validators"
	reviewsrepo "stayspot/internal/reviews/repository"
	spotsrepo "stayspot/internal/spots/repository"
	usersrepo "stayspot/internal/users/repository"
	"stayspot/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(usersrepo.EmailIndexName).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName(usersrepo.UsernameIndexName).SetUnique(true),
		},
	}

	SpotsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "lat", Value: 1}}},
		{Keys: bson.D{{Key: "lng", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}

	SpotImagesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "spot_id", Value: 1}}},
	}

	ReviewsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "spot_id", Value: 1}},
			Options: options.Index().SetName(ReviewAuthorIndexName).SetUnique(true),
		},
		{Keys: bson.D{{Key: "spot_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	ReviewImagesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "review_id", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "spot_id", Value: 1},
			{Key: "start_date", Value: 1},
			{Key: "end_date", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "start_date", Value: 1},
		}},
	}
)

// ReviewAuthorIndexName enforces one review per user and spot.
const ReviewAuthorIndexName = "reviews_user_spot_unique"

type Collection struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection in creation order.
func Collections() []Collection {
	return []Collection{
		{Name: usersrepo.CollectionName, Indexes: UsersIndexes, Validator: validators.UserValidator},
		{Name: spotsrepo.CollectionName, Indexes: SpotsIndexes, Validator: validators.SpotValidator},
		{Name: imagesrepo.SpotImagesCollection, Indexes: SpotImagesIndexes, Validator: validators.SpotImageValidator},
		{Name: reviewsrepo.CollectionName, Indexes: ReviewsIndexes, Validator: validators.ReviewValidator},
		{Name: imagesrepo.ReviewImagesCollection, Indexes: ReviewImagesIndexes, Validator: validators.ReviewImageValidator},
		{Name: bookingsrepo.CollectionName, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
		{Name: bookingsrepo.LocksCollectionName, Validator: validators.BookingLockValidator},
	}
}

// RunMigration creates the collections, installs their validators and
// ensures their indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running mongo migrations", "database", dbName)

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully", "database", dbName)
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
