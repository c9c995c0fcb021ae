package errors

import "errors"

var (
	ErrNotFound = errors.New("review not found")

	ErrInvalidID = errors.New("invalid review ID format")

	// ErrDuplicate is returned when the user already reviewed the spot.
	ErrDuplicate = errors.New("review already exists for user and spot")
)
