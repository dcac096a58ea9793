package users

import (
	"context"
	"time"
)

// User is an account that owns folders and saved items.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Service defines the business logic for users
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// Repository defines the data access interface for users
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
