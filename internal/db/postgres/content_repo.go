package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"Stash/internal/core/content"
	"Stash/internal/core/images"
)

type postgresContentRepo struct {
	db *sql.DB
}

// NewContentRepository creates a new PostgreSQL content repository
func NewContentRepository(db *sql.DB) content.Repository {
	return &postgresContentRepo{db: db}
}

const contentColumns = `
	c.id, c.user_id, c.url, c.domain, c.title, c.description, c.site_name, c.type,
	c.favicon, c.image_url, c.image_width, c.image_height,
	c.created_at, c.updated_at,
	COALESCE(ARRAY_AGG(cf.folder_id) FILTER (WHERE cf.folder_id IS NOT NULL), '{}')`

func (r *postgresContentRepo) Create(ctx context.Context, c *content.Content) error {
	query := `
		INSERT INTO content (id, user_id, url, domain, title, description, site_name, type,
			favicon, image_url, image_width, image_height, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	var imageURL *string
	var imageWidth, imageHeight *int
	if c.Image != nil {
		imageURL = &c.Image.URL
		imageWidth = &c.Image.Width
		imageHeight = &c.Image.Height
	}

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.URL, c.Domain, c.Title, c.Description, c.SiteName, c.Type,
		c.Favicon, imageURL, imageWidth, imageHeight, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

func (r *postgresContentRepo) GetByID(ctx context.Context, id string) (*content.Content, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content c
		LEFT JOIN content_folders cf ON cf.content_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`

	item, err := scanContent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return item, nil
}

// List returns up to filter.Limit items, newest first, positioned after the
// cursor if one is set. The caller validates the cursor before calling.
func (r *postgresContentRepo) List(ctx context.Context, userID string, filter content.Filter) ([]*content.Content, error) {
	var conditions []string
	args := []any{userID}

	if filter.FolderID != "" {
		// A public folder is listable by anyone; otherwise only the owner
		// sees its items.
		args = append(args, filter.FolderID)
		conditions = append(conditions, fmt.Sprintf(
			`c.id IN (SELECT content_id FROM content_folders WHERE folder_id = $%d)
			AND (c.user_id = $1 OR EXISTS (
				SELECT 1 FROM folders f WHERE f.id = $%d AND f.is_public
			))`, len(args), len(args)))
	} else {
		conditions = append(conditions, "c.user_id = $1")
	}

	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(c.title) LIKE $%d OR LOWER(c.description) LIKE $%d OR LOWER(c.url) LIKE $%d)",
			len(args), len(args), len(args)))
	}

	if filter.Cursor != "" {
		cursor, err := content.DecodeCursor(filter.Cursor)
		if err != nil {
			return nil, err
		}
		args = append(args, cursor.CreatedAt)
		createdArg := len(args)
		args = append(args, cursor.ID)
		conditions = append(conditions, fmt.Sprintf(
			"(c.created_at, c.id) < ($%d, $%d)", createdArg, len(args)))
	}

	args = append(args, filter.Limit)
	query := `
		SELECT ` + contentColumns + `
		FROM content c
		LEFT JOIN content_folders cf ON cf.content_id = c.id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $` + fmt.Sprintf("%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	result := []*content.Content{}
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return result, nil
}

func (r *postgresContentRepo) Update(ctx context.Context, c *content.Content) error {
	query := `
		UPDATE content
		SET title = $2, description = $3, updated_at = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, c.ID, c.Title, c.Description, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (r *postgresContentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}
	return nil
}

// SetFolders replaces the item's folder memberships in one transaction.
func (r *postgresContentRepo) SetFolders(ctx context.Context, contentID string, folderIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM content_folders WHERE content_id = $1`, contentID); err != nil {
		return fmt.Errorf("failed to clear folder memberships: %w", err)
	}

	for _, folderID := range folderIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO content_folders (content_id, folder_id) VALUES ($1, $2)`,
			contentID, folderID); err != nil {
			return fmt.Errorf("failed to assign folder %s: %w", folderID, err)
		}
	}

	return tx.Commit()
}

func (r *postgresContentRepo) InPublicFolder(ctx context.Context, contentID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM content_folders cf
			JOIN folders f ON f.id = cf.folder_id
			WHERE cf.content_id = $1 AND f.is_public
		)`

	var public bool
	if err := r.db.QueryRowContext(ctx, query, contentID).Scan(&public); err != nil {
		return false, fmt.Errorf("failed to check folder visibility: %w", err)
	}
	return public, nil
}

// ReplaceSimilar swaps out all similar-content rows for the item.
func (r *postgresContentRepo) ReplaceSimilar(ctx context.Context, contentID string, items []*content.SimilarContent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM similar_content WHERE content_id = $1`, contentID); err != nil {
		return fmt.Errorf("failed to clear similar content: %w", err)
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO similar_content (id, content_id, url, title, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.ContentID, item.URL, item.Title, item.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert similar content: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresContentRepo) GetSimilar(ctx context.Context, contentID string) ([]*content.SimilarContent, error) {
	query := `
		SELECT id, content_id, url, title, created_at
		FROM similar_content
		WHERE content_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get similar content: %w", err)
	}
	defer rows.Close()

	result := []*content.SimilarContent{}
	for rows.Next() {
		item := &content.SimilarContent{}
		var title sql.NullString
		if err := rows.Scan(&item.ID, &item.ContentID, &item.URL, &title, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan similar content: %w", err)
		}
		if title.Valid {
			item.Title = &title.String
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read similar content: %w", err)
	}
	return result, nil
}

func scanContent(row rowScanner) (*content.Content, error) {
	item := &content.Content{}
	var url, domain, title, description, siteName, contentType, favicon, imageURL sql.NullString
	var imageWidth, imageHeight sql.NullInt64
	var folderIDs pq.StringArray

	err := row.Scan(&item.ID, &item.UserID, &url, &domain, &title, &description, &siteName,
		&contentType, &favicon, &imageURL, &imageWidth, &imageHeight,
		&item.CreatedAt, &item.UpdatedAt, &folderIDs)
	if err != nil {
		return nil, err
	}

	item.URL = nullableString(url)
	item.Domain = nullableString(domain)
	item.Title = nullableString(title)
	item.Description = nullableString(description)
	item.SiteName = nullableString(siteName)
	item.Type = nullableString(contentType)
	item.Favicon = nullableString(favicon)
	item.FolderIDs = []string(folderIDs)

	if imageURL.Valid {
		item.Image = &images.Descriptor{
			URL:    imageURL.String,
			Width:  int(imageWidth.Int64),
			Height: int(imageHeight.Int64),
		}
	}
	return item, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
