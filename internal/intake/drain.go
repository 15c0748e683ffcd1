package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/model"
)

// DrainStats summarizes one pass over the pending queue.
type DrainStats struct {
	// Processed entries were classified and removed from the queue.
	Processed int
	// Reassigned counts the processed entries whose task changed folder.
	Reassigned int
	// Remaining entries are still queued after the pass.
	Remaining int
	// Halted is set when a classifier failure ended the pass early.
	Halted bool
}

// DrainOption customizes a Drainer.
type DrainOption func(*Drainer)

// WithProgress registers a callback invoked after each queue entry is
// resolved.
func WithProgress(fn func(done, total int)) DrainOption {
	return func(d *Drainer) {
		d.progress = fn
	}
}

// Drainer reclassifies tasks that were created offline.
type Drainer struct {
	store      Store
	classifier Classifier
	logger     *slog.Logger
	progress   func(done, total int)
	group      singleflight.Group
}

// NewDrainer creates a drainer for the pending queue in store.
func NewDrainer(store Store, classifier Classifier, logger *slog.Logger, opts ...DrainOption) *Drainer {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Drainer{
		store:      store,
		classifier: classifier,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Drain runs one pass over the queue in creation order. Each entry's raw text
// is classified again; a resolved answer moves the task and the entry is
// removed either way. The first classifier failure stops the pass and leaves
// that entry and all later ones queued for the next trigger. Concurrent calls
// share a single pass.
func (d *Drainer) Drain(ctx context.Context, settings Settings) (DrainStats, error) {
	v, err, shared := d.group.Do("drain", func() (any, error) {
		return d.drain(ctx, settings)
	})
	if shared {
		d.logger.Debug("joined running drain pass")
	}
	stats, _ := v.(DrainStats)
	return stats, err
}

func (d *Drainer) drain(ctx context.Context, settings Settings) (DrainStats, error) {
	pending, err := d.store.ListPending(ctx)
	if err != nil {
		return DrainStats{}, fmt.Errorf("failed to list pending classifications: %w", err)
	}
	stats := DrainStats{Remaining: len(pending)}

	if !settings.canClassify() || d.classifier == nil || len(pending) == 0 {
		return stats, nil
	}

	folders, err := d.store.ListCategories(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to load folders: %w", err)
	}
	if len(folders) == 0 {
		return stats, nil
	}

	d.logger.Info("draining pending classifications", "count", len(pending))

	for i, entry := range pending {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		folder, answer, ok, err := classify(ctx, d.classifier, entry.RawText, folders)
		if err != nil {
			stats.Halted = true
			d.logger.Warn("drain halted, entries stay queued",
				"task_id", entry.TaskID,
				"remaining", stats.Remaining,
				"error", err)
			return stats, nil
		}

		if ok {
			switch err := d.store.UpdateTaskCategory(ctx, entry.TaskID, folder.ID, model.SourceAI); {
			case err == nil:
				stats.Reassigned++
				d.logger.Info("reclassified queued task",
					"task_id", entry.TaskID,
					"folder", folder.Name)
			case errors.Is(err, common.ErrNotFound):
				d.logger.Debug("queued task no longer exists", "task_id", entry.TaskID)
			default:
				return stats, fmt.Errorf("failed to move task %s: %w", entry.TaskID, err)
			}
		} else {
			switch err := d.store.UpdateTaskSource(ctx, entry.TaskID, model.SourceFallbackFirst); {
			case err == nil:
				d.logger.Debug("queued task kept in its folder", "task_id", entry.TaskID, "answer", answer)
			case errors.Is(err, common.ErrNotFound):
				d.logger.Debug("queued task no longer exists", "task_id", entry.TaskID)
			default:
				return stats, fmt.Errorf("failed to update task %s: %w", entry.TaskID, err)
			}
		}

		if err := d.store.RemovePending(ctx, entry.ID); err != nil && !errors.Is(err, common.ErrNotFound) {
			return stats, fmt.Errorf("failed to remove pending classification %s: %w", entry.ID, err)
		}

		stats.Processed++
		stats.Remaining--
		if d.progress != nil {
			d.progress(i+1, len(pending))
		}
	}

	return stats, nil
}
