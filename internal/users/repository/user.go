package repository

import (
	"context"
	"errors"
	"fmt"
	userserrors "stayspot/internal/users/errors"
	"stayspot/pkg/config"
	mongotx "stayspot/pkg/db/mongo"
	"stayspot/pkg/model"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Users"

	EmailIndexName    = "users_email_unique"
	UsernameIndexName = "users_username_unique"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	FindByCredential(ctx context.Context, credential string) (*model.User, error)
	Taken(ctx context.Context, email, username string) (emailTaken bool, usernameTaken bool, err error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateError(err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", userserrors.ErrInvalidID, id)
	}

	var user model.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByIDs skips ids that are malformed or unknown.
func (r *mongoUserRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	objectIDs := mongotx.ObjectIDs(ids)
	if len(objectIDs) == 0 {
		return []*model.User{}, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// FindByCredential looks the user up by username or email.
func (r *mongoUserRepository) FindByCredential(ctx context.Context, credential string) (*model.User, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"username": credential},
		bson.M{"email": credential},
	}}

	var user model.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, credential)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *mongoUserRepository) Taken(ctx context.Context, email, username string) (bool, bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}
	opts := options.Find().SetProjection(bson.M{"email": 1, "username": 1}).SetLimit(2)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return false, false, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var matches []*model.User
	if err := cursor.All(ctx, &matches); err != nil {
		return false, false, fmt.Errorf("failed to decode users: %w", err)
	}

	var emailTaken, usernameTaken bool
	for _, u := range matches {
		emailTaken = emailTaken || u.Email == email
		usernameTaken = usernameTaken || u.Username == username
	}
	return emailTaken, usernameTaken, nil
}

// duplicateError names the unique index that rejected the insert.
func duplicateError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, EmailIndexName):
		return fmt.Errorf("%w: %v", userserrors.ErrDuplicateEmail, err)
	case strings.Contains(msg, UsernameIndexName):
		return fmt.Errorf("%w: %v", userserrors.ErrDuplicateUsername, err)
	default:
		return fmt.Errorf("%w: %v", userserrors.ErrDuplicate, err)
	}
}
