package service

import (
	"context"
	"stayspot/pkg/model"
)

// The spot service reads and cascades into collections owned by other
// domains. It depends only on the calls it makes.

type UserLookup interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type ReviewStore interface {
	FindBySpotIDs(ctx context.Context, spotIDs []string) ([]*model.Review, error)
	DeleteBySpot(ctx context.Context, spotID string) error
}

type SpotImageStore interface {
	FindBySpotIDs(ctx context.Context, spotIDs []string) ([]*model.SpotImage, error)
	DeleteBySpot(ctx context.Context, spotID string) error
}

type ReviewImageStore interface {
	DeleteByReviewIDs(ctx context.Context, reviewIDs []string) error
}

type BookingStore interface {
	DeleteBySpot(ctx context.Context, spotID string) error
}

type BookingLedger interface {
	Delete(ctx context.Context, spotID string) error
}

type Stores struct {
	Users         UserLookup
	Reviews       ReviewStore
	SpotImages    SpotImageStore
	ReviewImages  ReviewImageStore
	Bookings      BookingStore
	BookingLedger BookingLedger
}
