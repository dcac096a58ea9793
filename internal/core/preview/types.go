package preview

import "Stash/internal/core/images"

// Result is the normalized preview record every strategy produces.
// URL is always set; all other fields are best-effort and may be nil.
type Result struct {
	URL         string             `json:"url"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Image       *images.Descriptor `json:"image"`
	SiteName    *string            `json:"siteName"`
	Type        *string            `json:"type"`
	Favicon     *string            `json:"favicon"`
}

// Fallback returns the all-nil record for URLs no strategy could resolve.
// Downstream persistence always gets a usable row.
func Fallback(url string) *Result {
	return &Result{URL: url}
}

func str(s string) *string {
	return &s
}

// strOrNil returns nil for empty strings so absent metadata serializes as null.
func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
