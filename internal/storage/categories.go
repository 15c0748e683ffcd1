package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/model"
)

const folderColumns = `id, name, color, sort_order, context_hint, keywords, created_at, updated_at`

// ListCategories returns all folders ordered by their display position.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Folder, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + folderColumns + ` FROM folders ORDER BY sort_order, created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var folders []model.Folder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folders: %w", err)
	}

	slog.Debug("retrieved folders", "count", len(folders))
	return folders, nil
}

// GetCategoryByID returns a folder by ID, or common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id string) (*model.Folder, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = ?`, id)
	folder, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("folder %s: %w", id, common.ErrNotFound)
	}
	return folder, err
}

// GetCategoryByName returns a folder by case-insensitive name, or
// common.ErrNotFound.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Folder, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+folderColumns+` FROM folders WHERE name = ? COLLATE NOCASE`, strings.TrimSpace(name))
	folder, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("folder %q: %w", name, common.ErrNotFound)
	}
	return folder, err
}

// CreateCategory creates a folder at the last display position. Its color is
// the next one of the palette.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name, contextHint string, keywords []string) (*model.Folder, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM folders`).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count folders: %w", err)
	}

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM folders WHERE name = ? COLLATE NOCASE`, strings.TrimSpace(name)).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("folder %q: %w", name, common.ErrDuplicateEntry)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing folder: %w", err)
	}

	if keywords == nil {
		keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to encode keywords: %w", err)
	}

	now := time.Now()
	folder := &model.Folder{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Color:       model.FolderColors[count%len(model.FolderColors)],
		Order:       count,
		ContextHint: contextHint,
		Keywords:    keywords,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO folders (id, name, color, sort_order, context_hint, keywords, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		folder.ID, folder.Name, folder.Color, folder.Order, folder.ContextHint, string(keywordsJSON), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert folder: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit folder: %w", err)
	}

	slog.Info("created folder", "name", folder.Name, "id", folder.ID)
	return folder, nil
}

// ReorderCategories assigns display positions in the order of ids. Every
// folder must be listed exactly once.
func (s *SQLiteStorage) ReorderCategories(ctx context.Context, ids []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM folders`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count folders: %w", err)
	}
	if count != len(ids) {
		return fmt.Errorf("%w: expected %d folder ids, got %d", common.ErrInvalidConfig, count, len(ids))
	}

	now := time.Now()
	seen := make(map[string]struct{}, len(ids))
	for order, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("folder %s listed twice: %w", id, common.ErrDuplicateEntry)
		}
		seen[id] = struct{}{}

		res, err := tx.ExecContext(ctx, `UPDATE folders SET sort_order = ?, updated_at = ? WHERE id = ?`, order, now, id)
		if err != nil {
			return fmt.Errorf("failed to reorder folder %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("folder %s: %w", id, common.ErrNotFound)
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*model.Folder, error) {
	var folder model.Folder
	var keywords string
	err := row.Scan(&folder.ID, &folder.Name, &folder.Color, &folder.Order,
		&folder.ContextHint, &keywords, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan folder: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &folder.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords of folder %s: %w", folder.ID, err)
	}
	return &folder, nil
}
