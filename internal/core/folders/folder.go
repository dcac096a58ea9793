package folders

import (
	"context"
	"time"
)

// Folder groups saved items. A public folder exposes its items read-only
// to other users.
type Folder struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateRequest creates a folder
type CreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"isPublic"`
}

// UpdateRequest carries partial updates; nil fields are left untouched
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

// Service defines the business logic for folders
type Service interface {
	Create(ctx context.Context, userID string, req CreateRequest) (*Folder, error)
	Get(ctx context.Context, userID, folderID string) (*Folder, error)
	List(ctx context.Context, userID string) ([]*Folder, error)
	Update(ctx context.Context, userID, folderID string, req UpdateRequest) (*Folder, error)
	Delete(ctx context.Context, userID, folderID string) error
}

// Repository defines the data access interface for folders
type Repository interface {
	Create(ctx context.Context, f *Folder) error
	GetByID(ctx context.Context, id string) (*Folder, error)

	// GetByIDs returns the subset of ids that exist and belong to userID
	GetByIDs(ctx context.Context, ids []string, userID string) ([]*Folder, error)

	ListByUser(ctx context.Context, userID string) ([]*Folder, error)
	Update(ctx context.Context, f *Folder) error
	Delete(ctx context.Context, id string) error
}
