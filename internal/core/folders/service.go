package folders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type service struct {
	repo Repository
}

// NewService creates a new folder service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*Folder, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now().UTC()
	folder := &Folder{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// Get returns the folder if the caller owns it or it is public.
// Someone else's private folder reads as not found, not forbidden.
func (s *service) Get(ctx context.Context, userID, folderID string) (*Folder, error) {
	folder, err := s.repo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.UserID != userID && !folder.IsPublic {
		return nil, ErrNotFound
	}
	return folder, nil
}

func (s *service) List(ctx context.Context, userID string) ([]*Folder, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID, folderID string, req UpdateRequest) (*Folder, error) {
	folder, err := s.findOwned(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		folder.Title = title
	}
	if req.Description != nil {
		folder.Description = req.Description
	}
	if req.IsPublic != nil {
		folder.IsPublic = *req.IsPublic
	}
	folder.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to update folder: %w", err)
	}
	return folder, nil
}

func (s *service) Delete(ctx context.Context, userID, folderID string) error {
	if _, err := s.findOwned(ctx, userID, folderID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, folderID)
}

// findOwned loads the folder and enforces ownership. A folder owned by
// someone else yields ErrForbidden because write access was requested.
func (s *service) findOwned(ctx context.Context, userID, folderID string) (*Folder, error) {
	folder, err := s.repo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.UserID != userID {
		return nil, ErrForbidden
	}
	return folder, nil
}
