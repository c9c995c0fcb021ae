package repository

import (
	"context"
	"errors"
	"fmt"
	spotserrors "stayspot/internal/spots/errors"
	"stayspot/internal/spots/filter"
	"stayspot/pkg/config"
	mongotx "stayspot/pkg/db/mongo"
	"stayspot/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Spots"

var creationOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

type SpotRepository interface {
	Create(ctx context.Context, spot *model.Spot) error
	FindByID(ctx context.Context, id string) (*model.Spot, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Spot, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Spot, error)
	Search(ctx context.Context, f filter.Filter) ([]*model.Spot, error)
	Update(ctx context.Context, spot *model.Spot) error
	Delete(ctx context.Context, id string) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoSpotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoSpotRepository(cfg *config.Config) SpotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSpotRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoSpotRepository) Create(ctx context.Context, spot *model.Spot) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	spot.CreatedAt = now
	spot.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, spot)
	if err != nil {
		return fmt.Errorf("failed to create spot: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		spot.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSpotRepository) FindByID(ctx context.Context, id string) (*model.Spot, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", spotserrors.ErrInvalidID, id)
	}

	var spot model.Spot
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&spot); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", spotserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find spot: %w", err)
	}
	return &spot, nil
}

func (r *mongoSpotRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Spot, error) {
	objectIDs := mongotx.ObjectIDs(ids)
	if len(objectIDs) == 0 {
		return []*model.Spot{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, options.Find().SetSort(creationOrder))
}

func (r *mongoSpotRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Spot, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(creationOrder))
}

func (r *mongoSpotRepository) Search(ctx context.Context, f filter.Filter) ([]*model.Spot, error) {
	opts := options.Find().
		SetSort(creationOrder).
		SetLimit(int64(f.Size)).
		SetSkip(f.Offset())
	return r.find(ctx, searchQuery(f), opts)
}

func (r *mongoSpotRepository) Update(ctx context.Context, spot *model.Spot) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(spot.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", spotserrors.ErrInvalidID, spot.ID)
	}

	spot.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"address":     spot.Address,
			"city":        spot.City,
			"state":       spot.State,
			"country":     spot.Country,
			"lat":         spot.Lat,
			"lng":         spot.Lng,
			"name":        spot.Name,
			"description": spot.Description,
			"price":       spot.Price,
			"updated_at":  spot.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update spot: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", spotserrors.ErrNotFound, spot.ID)
	}
	return nil
}

func (r *mongoSpotRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", spotserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete spot: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", spotserrors.ErrNotFound, id)
	}
	return nil
}

func (r *mongoSpotRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoSpotRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*model.Spot, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query spots: %w", err)
	}
	defer cursor.Close(ctx)

	spots := []*model.Spot{}
	if err := cursor.All(ctx, &spots); err != nil {
		return nil, fmt.Errorf("failed to decode spots: %w", err)
	}
	return spots, nil
}

func searchQuery(f filter.Filter) bson.M {
	query := bson.M{}
	for field, rng := range map[string]filter.Range{
		"lat":   f.Lat,
		"lng":   f.Lng,
		"price": f.Price,
	} {
		if cond := rangeCondition(rng); cond != nil {
			query[field] = cond
		}
	}
	return query
}

func rangeCondition(rng filter.Range) bson.M {
	if !rng.IsSet() {
		return nil
	}
	cond := bson.M{}
	if rng.Min != nil {
		cond["$gte"] = *rng.Min
	}
	if rng.Max != nil {
		cond["$lte"] = *rng.Max
	}
	return cond
}
