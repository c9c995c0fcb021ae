package model

import "time"

// Images come in two kinds stored in separate collections, so an image
// can never point at the wrong parent type.

type SpotImage struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	SpotID    string    `json:"-" bson:"spot_id"`
	URL       string    `json:"url" bson:"url"`
	Preview   bool      `json:"preview" bson:"preview"`
	CreatedAt time.Time `json:"-" bson:"created_at"`
}

type ReviewImage struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ReviewID  string    `json:"-" bson:"review_id"`
	URL       string    `json:"url" bson:"url"`
	CreatedAt time.Time `json:"-" bson:"created_at"`
}

type SpotImageInput struct {
	URL     string `json:"url" validate:"required,http_url,max=2048"`
	Preview bool   `json:"preview"`
}

type ReviewImageInput struct {
	URL string `json:"url" validate:"required,http_url,max=2048"`
}
