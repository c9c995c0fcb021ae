package model

import "time"

type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"user_id"`
	SpotID    string    `json:"spotId" bson:"spot_id"`
	Review    string    `json:"review" bson:"review"`
	Stars     int       `json:"stars" bson:"stars"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

type ReviewInput struct {
	Review string   `json:"review" validate:"required"`
	Stars  *float64 `json:"stars" validate:"required,whole_number,min=1,max=5"`
}

// ReviewDetail is a review as listed under a spot.
type ReviewDetail struct {
	Review
	User         *PublicUser   `json:"User"`
	ReviewImages []ReviewImage `json:"ReviewImages"`
}

// UserReview is a review as listed for its author, with the spot attached.
type UserReview struct {
	Review
	User         *PublicUser   `json:"User"`
	Spot         *SpotPreview  `json:"Spot"`
	ReviewImages []ReviewImage `json:"ReviewImages"`
}
