package content

import "context"

// Service defines the business logic for saved items
type Service interface {
	// SaveLink resolves preview metadata for a URL and persists the result
	SaveLink(ctx context.Context, userID string, req SaveLinkRequest) (*Content, error)

	// Create persists an item from caller-supplied fields
	Create(ctx context.Context, userID string, req CreateRequest) (*Content, error)

	// Get returns an item the caller owns, or anyone's item that sits in a
	// public folder
	Get(ctx context.Context, userID, contentID string) (*Content, error)

	// List returns one page of the caller's items, newest first
	List(ctx context.Context, userID string, filter Filter) (*Page, error)

	// Update applies a partial update to an owned item
	Update(ctx context.Context, userID, contentID string, req UpdateRequest) (*Content, error)

	// Delete removes an owned item
	Delete(ctx context.Context, userID, contentID string) error

	// AddToFolders attaches an owned item to additional folders
	AddToFolders(ctx context.Context, userID, contentID string, folderIDs []string) (*Content, error)

	// SetSimilar replaces the item's similar-content suggestions
	SetSimilar(ctx context.Context, userID, contentID string, items []SimilarContent) ([]*SimilarContent, error)

	// GetSimilar returns the item's similar-content suggestions
	GetSimilar(ctx context.Context, userID, contentID string) ([]*SimilarContent, error)
}

// Repository defines the data access interface for saved items
type Repository interface {
	Create(ctx context.Context, c *Content) error
	GetByID(ctx context.Context, id string) (*Content, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Content, error)
	Update(ctx context.Context, c *Content) error
	Delete(ctx context.Context, id string) error

	// SetFolders replaces the item's folder memberships
	SetFolders(ctx context.Context, contentID string, folderIDs []string) error

	// InPublicFolder reports whether the item sits in at least one public folder
	InPublicFolder(ctx context.Context, contentID string) (bool, error)

	// ReplaceSimilar swaps out all similar-content rows for the item
	ReplaceSimilar(ctx context.Context, contentID string, items []*SimilarContent) error
	GetSimilar(ctx context.Context, contentID string) ([]*SimilarContent, error)
}
