package content

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"Stash/internal/core/folders"
	"Stash/internal/core/preview"
)

type service struct {
	repo       Repository
	folderRepo folders.Repository
	previews   preview.Service
}

// NewService creates a new content service
func NewService(repo Repository, folderRepo folders.Repository, previews preview.Service) Service {
	return &service{
		repo:       repo,
		folderRepo: folderRepo,
		previews:   previews,
	}
}

// SaveLink runs the preview pipeline for the URL and persists whatever it
// produced. Preview resolution never fails outright: an unreachable page
// still saves as a bare link. Only an invalid URL is rejected.
func (s *service) SaveLink(ctx context.Context, userID string, req SaveLinkRequest) (*Content, error) {
	if err := s.checkFolders(ctx, userID, req.FolderIDs); err != nil {
		return nil, err
	}

	result, err := s.previews.Resolve(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &Content{
		ID:          uuid.New().String(),
		UserID:      userID,
		URL:         &result.URL,
		Domain:      domainOf(&result.URL),
		Title:       result.Title,
		Description: result.Description,
		SiteName:    result.SiteName,
		Type:        result.Type,
		Favicon:     result.Favicon,
		Image:       result.Image,
		FolderIDs:   req.FolderIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.persist(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*Content, error) {
	if err := s.checkFolders(ctx, userID, req.FolderIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &Content{
		ID:          uuid.New().String(),
		UserID:      userID,
		URL:         req.URL,
		Domain:      domainOf(req.URL),
		Title:       req.Title,
		Description: req.Description,
		SiteName:    req.SiteName,
		Type:        req.Type,
		Favicon:     req.Favicon,
		Image:       req.Image,
		FolderIDs:   req.FolderIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.persist(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns the item if the caller owns it, or if it sits in a public
// folder. Anything else reads as not found.
func (s *service) Get(ctx context.Context, userID, contentID string) (*Content, error) {
	item, err := s.repo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if item.UserID == userID {
		return item, nil
	}

	public, err := s.repo.InPublicFolder(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check folder visibility: %w", err)
	}
	if !public {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *service) List(ctx context.Context, userID string, filter Filter) (*Page, error) {
	if filter.Cursor != "" {
		if _, err := DecodeCursor(filter.Cursor); err != nil {
			return nil, err
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}

	// Fetch one extra row to detect whether another page exists.
	pageSize := filter.Limit
	filter.Limit = pageSize + 1

	items, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	page := &Page{Data: items}
	if len(items) > pageSize {
		page.Data = items[:pageSize]
		page.HasMore = true
		last := page.Data[len(page.Data)-1]
		cursor := EncodeCursor(Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &cursor
	}
	if page.Data == nil {
		page.Data = []*Content{}
	}
	return page, nil
}

func (s *service) Update(ctx context.Context, userID, contentID string, req UpdateRequest) (*Content, error) {
	item, err := s.findOwned(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = req.Title
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}

	if req.FolderIDs != nil {
		if err := s.checkFolders(ctx, userID, *req.FolderIDs); err != nil {
			return nil, err
		}
		if err := s.repo.SetFolders(ctx, item.ID, *req.FolderIDs); err != nil {
			return nil, fmt.Errorf("failed to update folders: %w", err)
		}
		item.FolderIDs = *req.FolderIDs
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, userID, contentID string) error {
	if _, err := s.findOwned(ctx, userID, contentID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, contentID)
}

func (s *service) AddToFolders(ctx context.Context, userID, contentID string, folderIDs []string) (*Content, error) {
	item, err := s.findOwned(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkFolders(ctx, userID, folderIDs); err != nil {
		return nil, err
	}

	merged := item.FolderIDs
	seen := make(map[string]bool, len(merged))
	for _, id := range merged {
		seen[id] = true
	}
	for _, id := range folderIDs {
		if !seen[id] {
			merged = append(merged, id)
			seen[id] = true
		}
	}

	if err := s.repo.SetFolders(ctx, item.ID, merged); err != nil {
		return nil, fmt.Errorf("failed to update folders: %w", err)
	}
	item.FolderIDs = merged
	return item, nil
}

// SetSimilar replaces all suggestions for the item in one shot. Suggestion
// sets are recomputed wholesale upstream, so there is no partial update.
func (s *service) SetSimilar(ctx context.Context, userID, contentID string, items []SimilarContent) ([]*SimilarContent, error) {
	if _, err := s.findOwned(ctx, userID, contentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows := make([]*SimilarContent, 0, len(items))
	for _, item := range items {
		rows = append(rows, &SimilarContent{
			ID:        uuid.New().String(),
			ContentID: contentID,
			URL:       item.URL,
			Title:     item.Title,
			CreatedAt: now,
		})
	}

	if err := s.repo.ReplaceSimilar(ctx, contentID, rows); err != nil {
		return nil, fmt.Errorf("failed to replace similar content: %w", err)
	}
	return rows, nil
}

func (s *service) GetSimilar(ctx context.Context, userID, contentID string) ([]*SimilarContent, error) {
	if _, err := s.Get(ctx, userID, contentID); err != nil {
		return nil, err
	}
	return s.repo.GetSimilar(ctx, contentID)
}

func (s *service) persist(ctx context.Context, item *Content) error {
	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	if len(item.FolderIDs) > 0 {
		if err := s.repo.SetFolders(ctx, item.ID, item.FolderIDs); err != nil {
			return fmt.Errorf("failed to assign folders: %w", err)
		}
	} else {
		item.FolderIDs = []string{}
	}
	return nil
}

// domainOf extracts the bare hostname of the saved link, without any
// leading www, for display and filtering. Unparseable URLs yield nil.
func domainOf(rawURL *string) *string {
	if rawURL == nil {
		return nil
	}
	u, err := url.Parse(*rawURL)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	return &host
}

// findOwned loads the item and enforces ownership for write access.
func (s *service) findOwned(ctx context.Context, userID, contentID string) (*Content, error) {
	item, err := s.repo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrForbidden
	}
	return item, nil
}

// checkFolders verifies that every referenced folder exists and belongs to
// the caller.
func (s *service) checkFolders(ctx context.Context, userID string, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}
	found, err := s.folderRepo.GetByIDs(ctx, folderIDs, userID)
	if err != nil {
		return fmt.Errorf("failed to verify folders: %w", err)
	}
	if len(found) != len(folderIDs) {
		return ErrFolderNotFound
	}
	return nil
}
