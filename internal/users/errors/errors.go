package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("user not found")

	ErrInvalidID = errors.New("invalid user ID format")

	ErrDuplicate = errors.New("user already exists")

	ErrDuplicateEmail = fmt.Errorf("%w: email", ErrDuplicate)

	ErrDuplicateUsername = fmt.Errorf("%w: username", ErrDuplicate)
)
