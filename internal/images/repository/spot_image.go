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

const SpotImagesCollection = "SpotImages"

// creationOrder is the order images are listed in; the preview rule
// (earliest flagged image wins) depends on it.
var creationOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

type SpotImageRepository interface {
	Create(ctx context.Context, image *model.SpotImage) error
	FindByID(ctx context.Context, id string) (*model.SpotImage, error)
	FindBySpotIDs(ctx context.Context, spotIDs []string) ([]*model.SpotImage, error)
	Delete(ctx context.Context, id string) error
	DeleteBySpot(ctx context.Context, spotID string) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoSpotImageRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoSpotImageRepository(cfg *config.Config) SpotImageRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSpotImageRepository{
		cfg:        cfg,
		collection: db.Collection(SpotImagesCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoSpotImageRepository) Create(ctx context.Context, image *model.SpotImage) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	image.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, image)
	if err != nil {
		return fmt.Errorf("failed to create spot image: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		image.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSpotImageRepository) FindByID(ctx context.Context, id string) (*model.SpotImage, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", imageserrors.ErrInvalidID, id)
	}

	var image model.SpotImage
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&image); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", imageserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find spot image: %w", err)
	}
	return &image, nil
}

func (r *mongoSpotImageRepository) FindBySpotIDs(ctx context.Context, spotIDs []string) ([]*model.SpotImage, error) {
	spotIDs = mongotx.Unique(spotIDs)
	if len(spotIDs) == 0 {
		return []*model.SpotImage{}, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"spot_id": bson.M{"$in": spotIDs}}, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to query spot images: %w", err)
	}
	defer cursor.Close(ctx)

	images := []*model.SpotImage{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("failed to decode spot images: %w", err)
	}
	return images, nil
}

func (r *mongoSpotImageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", imageserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete spot image: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", imageserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoSpotImageRepository) DeleteBySpot(ctx context.Context, spotID string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"spot_id": spotID}); err != nil {
		return fmt.Errorf("failed to delete spot images: %w", err)
	}
	return nil
}

func (r *mongoSpotImageRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
