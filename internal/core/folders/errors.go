package folders

import "errors"

// Sentinel errors for folder operations
var (
	// ErrNotFound is returned when the folder does not exist
	ErrNotFound = errors.New("folder not found")

	// ErrForbidden is returned when the caller does not own the folder
	ErrForbidden = errors.New("folder belongs to another user")

	// ErrDuplicateTitle is returned when the user already has a folder with
	// the same title
	ErrDuplicateTitle = errors.New("folder with this title already exists")

	// ErrEmptyTitle is returned when a folder title is blank
	ErrEmptyTitle = errors.New("folder title is required")
)
