package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/service"
)

const taskColumns = `id, folder_id, task_group_id, text, raw_text, priority, task_type, source,
	due_date, entities, category_path, completed, archived, sort_order, created_at, updated_at`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateTask inserts a task. An empty ID is replaced with a new UUID and
// zero timestamps with the current time; both are written back to task.
func (s *SQLiteStorage) CreateTask(ctx context.Context, task *model.Task) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTask(task); err != nil {
		return err
	}
	return insertTask(ctx, s.db, task)
}

// CreateQueuedTask inserts a task together with its pending classification
// in one transaction, so neither exists without the other.
func (s *SQLiteStorage) CreateQueuedTask(ctx context.Context, task *model.Task, rawText string) (*model.PendingClassification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertTask(ctx, tx, task); err != nil {
		return nil, err
	}
	entry, err := insertPending(ctx, tx, task.ID, rawText)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit queued task: %w", err)
	}
	return entry, nil
}

func insertTask(ctx context.Context, db execer, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.TaskType == "" {
		task.TaskType = model.TaskTypeOther
	}
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	entities, err := encodeList(task.Entities)
	if err != nil {
		return fmt.Errorf("failed to encode entities: %w", err)
	}
	path, err := encodeList(task.CategoryPath)
	if err != nil {
		return fmt.Errorf("failed to encode category path: %w", err)
	}

	var dueDate any
	if task.DueDate != nil {
		dueDate = task.DueDate.Format(model.DateLayout)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.FolderID, task.TaskGroupID, task.Text, task.RawText,
		string(task.Priority), string(task.TaskType), string(task.Source),
		dueDate, entities, path, task.Completed, task.Archived, task.Order,
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return fmt.Errorf("task %s references a missing folder or group: %w", task.ID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// UpdateTaskCategory moves a task to another folder and records how that
// folder was chosen. The task leaves its group because groups belong to a
// single folder.
func (s *SQLiteStorage) UpdateTaskCategory(ctx context.Context, taskID, folderID string, source model.ClassificationSource) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(taskID, "taskID"); err != nil {
		return err
	}
	if err := validateString(folderID, "folderID"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET folder_id = ?,
			task_group_id = CASE WHEN folder_id = ? THEN task_group_id ELSE NULL END,
			source = ?,
			updated_at = ?
		WHERE id = ?`,
		folderID, folderID, string(source), time.Now(), taskID)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return fmt.Errorf("folder %s: %w", folderID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to update task folder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", taskID, common.ErrNotFound)
	}
	return nil
}

// UpdateTaskSource records how a task's current folder was chosen without
// moving it.
func (s *SQLiteStorage) UpdateTaskSource(ctx context.Context, taskID string, source model.ClassificationSource) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(taskID, "taskID"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET source = ?, updated_at = ? WHERE id = ?`,
		string(source), time.Now(), taskID)
	if err != nil {
		return fmt.Errorf("failed to update task source: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", taskID, common.ErrNotFound)
	}
	return nil
}

// GetTask returns a task by ID, or common.ErrNotFound.
func (s *SQLiteStorage) GetTask(ctx context.Context, id string) (*model.Task, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	task, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, common.ErrNotFound)
	}
	return task, err
}

// ListTasks returns tasks in display order: by folder position, then group,
// then position inside the group.
func (s *SQLiteStorage) ListTasks(ctx context.Context, filter service.TaskFilter) ([]model.Task, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var where []string
	var args []any
	if filter.FolderID != "" {
		where = append(where, "t.folder_id = ?")
		args = append(args, filter.FolderID)
	}
	if !filter.IncludeCompleted {
		where = append(where, "t.completed = 0")
	}
	if !filter.IncludeArchived {
		where = append(where, "t.archived = 0")
	}

	query := `SELECT ` + prefixColumns("t.", taskColumns) + `
		FROM tasks t
		JOIN folders f ON f.id = t.folder_id
		LEFT JOIN task_groups g ON g.id = t.task_group_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY f.sort_order, COALESCE(g.sort_order, -1), t.sort_order, t.created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// CountTasksInGroup counts the tasks of a folder in a group, or outside any
// group when groupID is nil.
func (s *SQLiteStorage) CountTasksInGroup(ctx context.Context, folderID string, groupID *string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(folderID, "folderID"); err != nil {
		return 0, err
	}

	var count int
	var err error
	if groupID == nil {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tasks WHERE folder_id = ? AND task_group_id IS NULL`, folderID).Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tasks WHERE folder_id = ? AND task_group_id = ?`, folderID, *groupID).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

func scanTask(row rowScanner) (*model.Task, error) {
	var task model.Task
	var groupID, dueDate sql.NullString
	var priority, taskType, source, entities, path string

	err := row.Scan(&task.ID, &task.FolderID, &groupID, &task.Text, &task.RawText,
		&priority, &taskType, &source, &dueDate, &entities, &path,
		&task.Completed, &task.Archived, &task.Order, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	task.Priority = model.Priority(priority)
	task.TaskType = model.TaskType(taskType)
	task.Source = model.ClassificationSource(source)
	if groupID.Valid {
		task.TaskGroupID = &groupID.String
	}
	if dueDate.Valid {
		d, err := time.ParseInLocation(model.DateLayout, dueDate.String, time.Local)
		if err != nil {
			return nil, fmt.Errorf("task %s has invalid due date %q: %w", task.ID, dueDate.String, err)
		}
		task.DueDate = &d
	}
	if err := json.Unmarshal([]byte(entities), &task.Entities); err != nil {
		return nil, fmt.Errorf("failed to decode entities of task %s: %w", task.ID, err)
	}
	if err := json.Unmarshal([]byte(path), &task.CategoryPath); err != nil {
		return nil, fmt.Errorf("failed to decode category path of task %s: %w", task.ID, err)
	}
	return &task, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

func prefixColumns(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = prefix + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
