package errors

import "errors"

var (
	ErrNotFound = errors.New("image not found")

	ErrInvalidID = errors.New("invalid image ID format")
)
