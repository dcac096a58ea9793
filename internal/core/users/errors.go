package users

import "errors"

// Sentinel errors for user operations
var (
	// ErrNotFound is returned when the user does not exist
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidEmail is returned when the email is blank or malformed
	ErrInvalidEmail = errors.New("invalid email address")
)
