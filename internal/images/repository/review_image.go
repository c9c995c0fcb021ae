package repository

import (
	"context"
	"errors"
	"fmt"
	imageserrors "stayspot/internal/images/errors"
	"stayspot/pkg/config"
	mongotx "stayspot/pkg/db/mongo"
	"stayspot/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReviewImagesCollection = "ReviewImages"

type ReviewImageRepository interface {
	Create(ctx context.Context, image *model.ReviewImage) error
	FindByID(ctx context.Context, id string) (*model.ReviewImage, error)
	FindByReviewIDs(ctx context.Context, reviewIDs []string) ([]*model.ReviewImage, error)
	CountByReview(ctx context.Context, reviewID string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByReviewIDs(ctx context.Context, reviewIDs []string) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoReviewImageRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoReviewImageRepository(cfg *config.Config) ReviewImageRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReviewImageRepository{
		cfg:        cfg,
		collection: db.Collection(ReviewImagesCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoReviewImageRepository) Create(ctx context.Context, image *model.ReviewImage) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	image.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, image)
	if err != nil {
		return fmt.Errorf("failed to create review image: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		image.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReviewImageRepository) FindByID(ctx context.Context, id string) (*model.ReviewImage, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", imageserrors.ErrInvalidID, id)
	}

	var image model.ReviewImage
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&image); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", imageserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find review image: %w", err)
	}
	return &image, nil
}

func (r *mongoReviewImageRepository) FindByReviewIDs(ctx context.Context, reviewIDs []string) ([]*model.ReviewImage, error) {
	reviewIDs = mongotx.Unique(reviewIDs)
	if len(reviewIDs) == 0 {
		return []*model.ReviewImage{}, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"review_id": bson.M{"$in": reviewIDs}}, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to query review images: %w", err)
	}
	defer cursor.Close(ctx)

	images := []*model.ReviewImage{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("failed to decode review images: %w", err)
	}
	return images, nil
}

func (r *mongoReviewImageRepository) CountByReview(ctx context.Context, reviewID string) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"review_id": reviewID})
	if err != nil {
		return 0, fmt.Errorf("failed to count review images: %w", err)
	}
	return count, nil
}

func (r *mongoReviewImageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", imageserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete review image: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", imageserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoReviewImageRepository) DeleteByReviewIDs(ctx context.Context, reviewIDs []string) error {
	reviewIDs = mongotx.Unique(reviewIDs)
	if len(reviewIDs) == 0 {
		return nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"review_id": bson.M{"$in": reviewIDs}}); err != nil {
		return fmt.Errorf("failed to delete review images: %w", err)
	}
	return nil
}

func (r *mongoReviewImageRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
