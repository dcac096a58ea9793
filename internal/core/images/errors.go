package images

import "errors"

var (
	// ErrImageTooLarge is returned when the source image exceeds the download cap.
	ErrImageTooLarge = errors.New("source image exceeds maximum allowed size")

	// ErrUnsupportedFormat is returned when the image format cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
