package service

import (
	"context"
	"stayspot/pkg/model"
)

type SpotLookup interface {
	FindByID(ctx context.Context, id string) (*model.Spot, error)
}

// SpotLedger is the per spot ledger a spot delete removes in its cascade.
// Touching it inside a transaction makes an upload conflict with that delete.
type SpotLedger interface {
	Touch(ctx context.Context, spotID string) error
}

// ReviewStore finds reviews and bumps their image version so concurrent
// uploads to one review serialize inside a transaction.
type ReviewStore interface {
	FindByID(ctx context.Context, id string) (*model.Review, error)
	TouchImages(ctx context.Context, id string) error
}
