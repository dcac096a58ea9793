package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"Stash/internal/core/folders"
)

type postgresFolderRepo struct {
	db *sql.DB
}

// NewFolderRepository creates a new PostgreSQL folder repository
func NewFolderRepository(db *sql.DB) folders.Repository {
	return &postgresFolderRepo{db: db}
}

func (r *postgresFolderRepo) Create(ctx context.Context, f *folders.Folder) error {
	query := `
		INSERT INTO folders (id, user_id, title, description, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.UserID, f.Title, f.Description, f.IsPublic, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return folders.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to create folder: %w", err)
	}
	return nil
}

func (r *postgresFolderRepo) GetByID(ctx context.Context, id string) (*folders.Folder, error) {
	query := `
		SELECT id, user_id, title, description, is_public, created_at, updated_at
		FROM folders WHERE id = $1`

	folder, err := scanFolder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, folders.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return folder, nil
}

func (r *postgresFolderRepo) GetByIDs(ctx context.Context, ids []string, userID string) ([]*folders.Folder, error) {
	if len(ids) == 0 {
		return []*folders.Folder{}, nil
	}

	query := `
		SELECT id, user_id, title, description, is_public, created_at, updated_at
		FROM folders WHERE id = ANY($1) AND user_id = $2`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get folders: %w", err)
	}
	defer rows.Close()

	return collectFolders(rows)
}

func (r *postgresFolderRepo) ListByUser(ctx context.Context, userID string) ([]*folders.Folder, error) {
	query := `
		SELECT id, user_id, title, description, is_public, created_at, updated_at
		FROM folders WHERE user_id = $1
		ORDER BY title ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	return collectFolders(rows)
}

func (r *postgresFolderRepo) Update(ctx context.Context, f *folders.Folder) error {
	query := `
		UPDATE folders
		SET title = $2, description = $3, is_public = $4, updated_at = $5
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		f.ID, f.Title, f.Description, f.IsPublic, f.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return folders.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to update folder: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return folders.ErrNotFound
	}
	return nil
}

func (r *postgresFolderRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return folders.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*folders.Folder, error) {
	folder := &folders.Folder{}
	var description sql.NullString

	err := row.Scan(&folder.ID, &folder.UserID, &folder.Title, &description,
		&folder.IsPublic, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		folder.Description = &description.String
	}
	return folder, nil
}

func collectFolders(rows *sql.Rows) ([]*folders.Folder, error) {
	result := []*folders.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		result = append(result, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read folders: %w", err)
	}
	return result, nil
}
