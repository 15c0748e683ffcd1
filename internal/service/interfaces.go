// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/tareas/internal/model"
)

// CategoryStore reads folders, the destinations a task can be classified into.
type CategoryStore interface {
	// ListCategories returns every folder ordered by Order.
	ListCategories(ctx context.Context) ([]model.Folder, error)
}

// TaskStore persists tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	UpdateTaskCategory(ctx context.Context, taskID, folderID string, source model.ClassificationSource) error
	UpdateTaskSource(ctx context.Context, taskID string, source model.ClassificationSource) error
	// CountTasksInGroup counts the tasks of a folder in groupID, or outside
	// any group when groupID is nil.
	CountTasksInGroup(ctx context.Context, folderID string, groupID *string) (int, error)
}

// TaskGroupStore persists the named groups inside a folder.
type TaskGroupStore interface {
	ListTaskGroups(ctx context.Context, folderID string) ([]model.TaskGroup, error)
	CreateTaskGroup(ctx context.Context, folderID, name string) (*model.TaskGroup, error)
}

// PendingStore is the offline reconciliation queue.
type PendingStore interface {
	// CreateQueuedTask stores task and its queue entry atomically.
	CreateQueuedTask(ctx context.Context, task *model.Task, rawText string) (*model.PendingClassification, error)
	// ListPending returns entries in creation order.
	ListPending(ctx context.Context) ([]model.PendingClassification, error)
	RemovePending(ctx context.Context, id string) error
}

// Connectivity reports whether the classifier is reachable.
type Connectivity interface {
	Online(ctx context.Context) bool
	// Watch emits once per offline-to-online transition until ctx is done.
	Watch(ctx context.Context) <-chan struct{}
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	FolderID         string
	IncludeCompleted bool
	IncludeArchived  bool
}

// Storage is the full persistence layer used by the command line.
type Storage interface {
	CategoryStore
	TaskStore
	TaskGroupStore
	PendingStore

	CreateCategory(ctx context.Context, name, contextHint string, keywords []string) (*model.Folder, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Folder, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Folder, error)
	ReorderCategories(ctx context.Context, ids []string) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)

	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
