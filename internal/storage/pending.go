package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/model"
)

// insertPending records that a task still needs a classifier decision.
// Entry IDs are ULIDs, so ID order matches creation order even for equal
// timestamps.
func insertPending(ctx context.Context, db execer, taskID, rawText string) (*model.PendingClassification, error) {
	entry := &model.PendingClassification{
		ID:        ulid.Make().String(),
		TaskID:    taskID,
		RawText:   rawText,
		CreatedAt: time.Now(),
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO pending_classifications (id, task_id, raw_text, created_at)
		VALUES (?, ?, ?, ?)`,
		entry.ID, entry.TaskID, entry.RawText, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue task %s: %w", taskID, err)
	}
	return entry, nil
}

// ListPending returns the queue in creation order.
func (s *SQLiteStorage) ListPending(ctx context.Context) ([]model.PendingClassification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_id, raw_text, created_at
		FROM pending_classifications
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.PendingClassification
	for rows.Next() {
		var e model.PendingClassification
		if err := rows.Scan(&e.ID, &e.TaskID, &e.RawText, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending classification: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending classifications: %w", err)
	}
	return entries, nil
}

// RemovePending deletes a queue entry.
func (s *SQLiteStorage) RemovePending(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM pending_classifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove pending classification: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("pending classification %s: %w", id, common.ErrNotFound)
	}
	return nil
}
