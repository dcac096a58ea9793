package preview

import (
	"context"

	"Stash/internal/core/images"
)

// Strategy is one self-contained way of deriving a preview from a URL.
// TryResolve returns (nil, nil) when the strategy does not apply to the URL
// (cheap no-op), a non-nil error when it was attempted and failed, and a
// Result on success. Strategies never panic on upstream failure.
type Strategy interface {
	Name() string
	TryResolve(ctx context.Context, rawURL string) (*Result, error)
}

// ImageNormalizer re-hosts a remote image and returns a stable descriptor.
// A nil return means the image could not be normalized; callers treat that
// as "no image", never as a failure of the surrounding preview.
type ImageNormalizer interface {
	Normalize(ctx context.Context, sourceURL string) *images.Descriptor
}
