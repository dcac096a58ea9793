package content

import "errors"

// Sentinel errors for saved-item operations
var (
	// ErrNotFound is returned when the item does not exist or is not visible
	// to the caller
	ErrNotFound = errors.New("content not found")

	// ErrForbidden is returned when the caller does not own the item
	ErrForbidden = errors.New("content belongs to another user")

	// ErrInvalidCursor is returned when a pagination cursor cannot be decoded
	ErrInvalidCursor = errors.New("invalid pagination cursor")

	// ErrFolderNotFound is returned when a referenced folder does not exist
	// or belongs to another user
	ErrFolderNotFound = errors.New("folder not found")
)
