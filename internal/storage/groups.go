package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/model"
)

// ListTaskGroups returns the groups of a folder in display order.
func (s *SQLiteStorage) ListTaskGroups(ctx context.Context, folderID string) ([]model.TaskGroup, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(folderID, "folderID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, folder_id, name, sort_order, collapsed, created_at, updated_at
		FROM task_groups
		WHERE folder_id = ?
		ORDER BY sort_order, created_at`, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query task groups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []model.TaskGroup
	for rows.Next() {
		var g model.TaskGroup
		if err := rows.Scan(&g.ID, &g.FolderID, &g.Name, &g.Order, &g.Collapsed, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task groups: %w", err)
	}
	return groups, nil
}

// CreateTaskGroup appends a new group to a folder.
func (s *SQLiteStorage) CreateTaskGroup(ctx context.Context, folderID, name string) (*model.TaskGroup, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(folderID, "folderID"); err != nil {
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
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM task_groups WHERE folder_id = ?`, folderID).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count task groups: %w", err)
	}

	now := time.Now()
	group := &model.TaskGroup{
		ID:        uuid.NewString(),
		FolderID:  folderID,
		Name:      strings.TrimSpace(name),
		Order:     count,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO task_groups (id, folder_id, name, sort_order, collapsed, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`,
		group.ID, group.FolderID, group.Name, group.Order, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return nil, fmt.Errorf("folder %s: %w", folderID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to insert task group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit task group: %w", err)
	}
	return group, nil
}
