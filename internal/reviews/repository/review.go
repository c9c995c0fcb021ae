package repository

import (
	"context"
	"errors"
	"fmt"
	reviewserrors "stayspot/internal/reviews/errors"
	"stayspot/pkg/config"
	mongotx "stayspot/pkg/db/mongo"
	"stayspot/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Reviews"

var creationOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id string) (*model.Review, error)
	FindBySpotIDs(ctx context.Context, spotIDs []string) ([]*model.Review, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id string) error
	DeleteBySpot(ctx context.Context, spotID string) error
	TouchImages(ctx context.Context, id string) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoReviewRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoReviewRepository(cfg *config.Config) ReviewRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReviewRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// Create relies on the unique (user_id, spot_id) index; a second review of
// the same spot by the same user fails with ErrDuplicate.
func (r *mongoReviewRepository) Create(ctx context.Context, review *model.Review) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: user %s spot %s", reviewserrors.ErrDuplicate, review.UserID, review.SpotID)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReviewRepository) FindByID(ctx context.Context, id string) (*model.Review, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reviewserrors.ErrInvalidID, id)
	}

	var review model.Review
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", reviewserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}

func (r *mongoReviewRepository) FindBySpotIDs(ctx context.Context, spotIDs []string) ([]*model.Review, error) {
	spotIDs = mongotx.Unique(spotIDs)
	if len(spotIDs) == 0 {
		return []*model.Review{}, nil
	}
	return r.find(ctx, bson.M{"spot_id": bson.M{"$in": spotIDs}})
}

func (r *mongoReviewRepository) FindByUser(ctx context.Context, userID string) ([]*model.Review, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *mongoReviewRepository) Update(ctx context.Context, review *model.Review) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(review.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", reviewserrors.ErrInvalidID, review.ID)
	}

	review.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"review":     review.Review,
			"stars":      review.Stars,
			"updated_at": review.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", reviewserrors.ErrNotFound, review.ID)
	}
	return nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reviewserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", reviewserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoReviewRepository) DeleteBySpot(ctx context.Context, spotID string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"spot_id": spotID}); err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}

// TouchImages bumps a counter on the review so that concurrent image
// uploads to the same review conflict inside their transactions.
func (r *mongoReviewRepository) TouchImages(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reviewserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$inc": bson.M{"image_version": 1}})
	if err != nil {
		return fmt.Errorf("failed to touch review: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", reviewserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoReviewRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoReviewRepository) find(ctx context.Context, query bson.M) ([]*model.Review, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
