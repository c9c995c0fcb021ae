package model

import "time"

type Booking struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	SpotID    string    `json:"spotId" bson:"spot_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	StartDate Date      `json:"startDate" bson:"start_date"`
	EndDate   Date      `json:"endDate" bson:"end_date"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// BookingInput keeps the dates as text so that a malformed date is reported
// per field instead of failing the whole body.
type BookingInput struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// BookingForOwner is what a spot owner sees for each booking of the spot.
type BookingForOwner struct {
	User *PublicUser `json:"User"`
	Booking
}

// BookingForGuest hides who booked and when the booking was made.
type BookingForGuest struct {
	SpotID    string `json:"spotId"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
}

type BookingWithSpot struct {
	Booking
	Spot *SpotPreview `json:"Spot"`
}

// BookingLock is the per spot ledger document every booking write bumps
// inside its transaction, so concurrent writers on one spot conflict.
type BookingLock struct {
	SpotID    string    `json:"spotId" bson:"_id"`
	Version   int64     `json:"version" bson:"version"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
