package service

import (
	"context"
	"stayspot/pkg/model"
)

type SpotLookup interface {
	FindByID(ctx context.Context, id string) (*model.Spot, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Spot, error)
}

type UserLookup interface {
	FindByIDs(ctx context.Context, ids []string) ([]*model.User, error)
}

type SpotImageLookup interface {
	FindBySpotIDs(ctx context.Context, spotIDs []string) ([]*model.SpotImage, error)
}

type ReviewImageStore interface {
	FindByReviewIDs(ctx context.Context, reviewIDs []string) ([]*model.ReviewImage, error)
	DeleteByReviewIDs(ctx context.Context, reviewIDs []string) error
}

// SpotLedger is the per spot ledger a spot delete removes in its cascade.
type SpotLedger interface {
	Touch(ctx context.Context, spotID string) error
}

type Stores struct {
	Spots        SpotLookup
	Users        UserLookup
	SpotImages   SpotImageLookup
	ReviewImages ReviewImageStore
	SpotLedger   SpotLedger
}
