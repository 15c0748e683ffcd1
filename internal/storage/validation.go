// Package storage provides the SQLite persistence layer for folders, tasks
// and the offline classification queue.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/tareas/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrEmptySlice      = errors.New("slice cannot be empty")
	ErrInvalidTask     = errors.New("invalid task")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidTaskType = errors.New("invalid task type")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTask checks a task before it is written.
func validateTask(task *model.Task) error {
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParameter)
	}
	if strings.TrimSpace(task.FolderID) == "" {
		return fmt.Errorf("%w: missing folder", ErrInvalidTask)
	}
	if strings.TrimSpace(task.Text) == "" {
		return fmt.Errorf("%w: missing text", ErrInvalidTask)
	}
	if _, err := model.ParsePriority(string(task.Priority)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPriority, task.Priority)
	}
	if task.TaskType != "" && !task.TaskType.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidTaskType, task.TaskType)
	}
	return nil
}
