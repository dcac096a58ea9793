package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// maxDimension bounds both width and height of stored images.
	maxDimension = 640

	// jpegQuality is the encode quality for normalized images.
	jpegQuality = 85

	// DefaultMaxSourceSizeMB caps the source download if not configured.
	DefaultMaxSourceSizeMB = 10
)

// Normalizer downloads candidate preview images, scales them down to fit
// within maxDimension on both axes and stores them as JPEG. Normalization
// is best-effort: every failure is logged and reported as "no image".
type Normalizer struct {
	client        *http.Client
	store         BlobStore
	publicBaseURL string
	maxSizeBytes  int64
}

// NewNormalizer creates a Normalizer backed by the given blob store.
// publicBaseURL is the externally reachable prefix for stored images, e.g.
// "https://cdn.example.com". maxSizeMB of 0 uses the default of 10MB.
func NewNormalizer(store BlobStore, publicBaseURL string, timeout time.Duration, maxSizeMB int) *Normalizer {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSourceSizeMB
	}
	return &Normalizer{
		client:        &http.Client{Timeout: timeout},
		store:         store,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxSizeBytes:  int64(maxSizeMB) * 1024 * 1024,
	}
}

// Normalize fetches sourceURL, scales the image down and stores it.
// Returns nil when the source is unusable for any reason: the preview is
// still valid without an image.
func (n *Normalizer) Normalize(ctx context.Context, sourceURL string) *Descriptor {
	if !isHTTPSURL(sourceURL) {
		log.Printf("[IMAGES] Skipping non-https image source: %s", sourceURL)
		return nil
	}

	data, err := n.fetch(ctx, sourceURL)
	if err != nil {
		log.Printf("[IMAGES] Failed to fetch %s: %v", sourceURL, err)
		return nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("[IMAGES] Failed to decode %s: %v", sourceURL, err)
		return nil
	}

	scaled := fitWithin(img, maxDimension, maxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		log.Printf("[IMAGES] Failed to encode %s: %v", sourceURL, err)
		return nil
	}

	key := fmt.Sprintf("images/%s.jpg", uuid.New().String())
	if err := n.store.Put(ctx, key, buf.Bytes(), "image/jpeg"); err != nil {
		log.Printf("[IMAGES] Failed to store %s: %v", sourceURL, err)
		return nil
	}

	bounds := scaled.Bounds()
	return &Descriptor{
		URL:    n.publicBaseURL + "/" + key,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}

// fetch downloads the image with a hard size cap. The reader is limited to
// maxSizeBytes+1 so an oversized body is detected rather than truncated.
func (n *Normalizer) fetch(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Stash-Preview/1.0")
	req.Header.Set("Accept", "image/*")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > 0 && resp.ContentLength > n.maxSizeBytes {
		return nil, fmt.Errorf("%w: content length %d exceeds maximum %d bytes",
			ErrImageTooLarge, resp.ContentLength, n.maxSizeBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, n.maxSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(data)) > n.maxSizeBytes {
		return nil, fmt.Errorf("%w: body exceeds maximum %d bytes", ErrImageTooLarge, n.maxSizeBytes)
	}
	return data, nil
}

// fitWithin scales the image to fit inside maxWidth x maxHeight preserving
// aspect ratio. Images already within bounds are returned unchanged.
func fitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth && bounds.Dy() <= maxHeight {
		return img
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}

func isHTTPSURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme == "https" && u.Host != ""
}
