package content

import (
	"time"

	"Stash/internal/core/images"
)

// Content is a saved item: a link enriched with preview metadata, or a
// bare note the user typed in themselves.
type Content struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	URL         *string            `json:"url,omitempty"`
	Domain      *string            `json:"domain,omitempty"`
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	SiteName    *string            `json:"siteName,omitempty"`
	Type        *string            `json:"type,omitempty"`
	Favicon     *string            `json:"favicon,omitempty"`
	Image       *images.Descriptor `json:"image,omitempty"`
	FolderIDs   []string           `json:"folderIds"`
	CreatedAt   time.Time          `json:"savedAt"`
	UpdatedAt   time.Time          `json:"-"`
}

// SimilarContent is a related-item suggestion attached to a saved item.
type SimilarContent struct {
	ID        string    `json:"id"`
	ContentID string    `json:"contentId"`
	URL       string    `json:"url"`
	Title     *string   `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveLinkRequest asks the service to resolve a URL and persist the result.
type SaveLinkRequest struct {
	URL       string   `json:"url"`
	FolderIDs []string `json:"folderIds"`
}

// CreateRequest creates an item from caller-supplied fields without
// running the preview pipeline.
type CreateRequest struct {
	URL         *string            `json:"url"`
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	SiteName    *string            `json:"siteName"`
	Type        *string            `json:"type"`
	Favicon     *string            `json:"favicon"`
	Image       *images.Descriptor `json:"image"`
	FolderIDs   []string           `json:"folderIds"`
}

// UpdateRequest carries partial updates; nil fields are left untouched.
type UpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	FolderIDs   *[]string `json:"folderIds"`
}

// Filter selects and paginates a user's saved items.
type Filter struct {
	Cursor   string
	Limit    int
	Search   string
	FolderID string
}

// DefaultPageSize is used when the caller does not specify a limit.
const DefaultPageSize = 20

// MaxPageSize caps the page size a caller may request.
const MaxPageSize = 100

// Page is one keyset-paginated slice of results.
type Page struct {
	Data       []*Content `json:"data"`
	NextCursor *string    `json:"nextCursor,omitempty"`
	HasMore    bool       `json:"hasMore"`
}
