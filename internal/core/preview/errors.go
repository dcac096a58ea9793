package preview

import "errors"

var (
	// ErrInvalidURL is returned when the input does not parse as an absolute
	// http(s) URL. This is the only error Resolve surfaces to callers.
	ErrInvalidURL = errors.New("invalid URL: must be an absolute http or https URL")
)
