package model

import "time"

const NoPreviewImage = "No preview image available"

type Spot struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"ownerId" bson:"owner_id"`
	Address     string    `json:"address" bson:"address"`
	City        string    `json:"city" bson:"city"`
	State       string    `json:"state" bson:"state"`
	Country     string    `json:"country" bson:"country"`
	Lat         float64   `json:"lat" bson:"lat"`
	Lng         float64   `json:"lng" bson:"lng"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// SpotInput is the body of spot create and update. Numbers are pointers so
// a missing value is told apart from zero.
type SpotInput struct {
	Address     string   `json:"address" validate:"required"`
	City        string   `json:"city" validate:"required"`
	State       string   `json:"state" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	Lat         *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng         *float64 `json:"lng" validate:"required,min=-180,max=180"`
	Name        string   `json:"name" validate:"required,max=50"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,min=0"`
}

// Apply copies validated input onto s.
func (in *SpotInput) Apply(s *Spot) {
	s.Address = in.Address
	s.City = in.City
	s.State = in.State
	s.Country = in.Country
	s.Lat = *in.Lat
	s.Lng = *in.Lng
	s.Name = in.Name
	s.Description = in.Description
	s.Price = *in.Price
}

// SpotSummary is one entry of a spot list.
type SpotSummary struct {
	Spot
	AvgRating    Rating `json:"avgRating"`
	PreviewImage string `json:"previewImage"`
}

type SpotDetail struct {
	Spot
	NumReviews    int         `json:"numReviews"`
	AvgStarRating Rating      `json:"avgStarRating"`
	SpotImages    []SpotImage `json:"SpotImages"`
	Owner         *PublicUser `json:"Owner"`
}

// SpotPreview is the short spot shape nested in reviews and bookings.
type SpotPreview struct {
	ID           string  `json:"id"`
	OwnerID      string  `json:"ownerId"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PreviewImage string  `json:"previewImage"`
}

func (s *Spot) Preview(previewImage string) SpotPreview {
	return SpotPreview{
		ID:           s.ID,
		OwnerID:      s.OwnerID,
		Address:      s.Address,
		City:         s.City,
		State:        s.State,
		Country:      s.Country,
		Lat:          s.Lat,
		Lng:          s.Lng,
		Name:         s.Name,
		Price:        s.Price,
		PreviewImage: previewImage,
	}
}

type SpotList struct {
	Spots []SpotSummary `json:"Spots"`
	Page  int           `json:"page,omitempty"`
	Size  int           `json:"size,omitempty"`
}
