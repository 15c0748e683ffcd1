// Package intake turns captured text into stored tasks. It decides each
// task's folder, consulting the AI classifier when one is reachable, and
// queues offline tasks for later reclassification.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/tareas/internal/capture"
	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/parser"
	"github.com/Veraticus/tareas/internal/service"
)

// ErrEmptyTask is returned when nothing is left of the input once the
// priority and group directives are removed.
var ErrEmptyTask = errors.New("task text is empty")

// Store is the persistence the intake pipeline needs.
type Store interface {
	service.CategoryStore
	service.TaskStore
	service.TaskGroupStore
	service.PendingStore
}

// Settings are the classification inputs evaluated at call time.
type Settings struct {
	// APIKey is the classification credential. Empty disables the classifier.
	APIKey string
	// Online reports whether the network is reachable right now.
	Online bool
}

func (s Settings) canClassify() bool {
	return s.Online && s.APIKey != ""
}

// Result describes a created task and how its folder was chosen.
type Result struct {
	Task    *model.Task
	Folder  model.Folder
	Group   *model.TaskGroup
	Pending *model.PendingClassification
	Parse   parser.Result
	Outcome model.ClassificationOutcome
	// Answer is the raw classifier answer, empty when it was not consulted.
	Answer string
}

// Service creates tasks from raw text.
type Service struct {
	store      Store
	classifier Classifier
	parser     *parser.Parser
	logger     *slog.Logger
	now        func() time.Time
}

// New creates an intake service. classifier may be nil, in which case every
// task falls back to the first folder.
func New(store Store, classifier Classifier, p *parser.Parser, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if p == nil {
		p = parser.MustNew()
	}
	return &Service{
		store:      store,
		classifier: classifier,
		parser:     p,
		logger:     logger,
		now:        time.Now,
	}
}

type createOptions struct {
	chips    []model.Suggestion
	hasChips bool
}

// CreateOption customizes a single Create call.
type CreateOption func(*createOptions)

// WithChips stores the attributes carried by the user's confirmed chips
// instead of every suggestion of a fresh parse.
func WithChips(chips []model.Suggestion) CreateOption {
	return func(o *createOptions) {
		o.chips = chips
		o.hasChips = true
	}
}

// Create stores a task for raw. The folder is chosen in this order:
// offline tasks go to the first folder and are queued; with a credential the
// classifier's answer is used when it resolves; everything else falls back to
// the first folder. Classifier failures never fail the call.
func (s *Service) Create(ctx context.Context, raw string, settings Settings, opts ...CreateOption) (*Result, error) {
	var options createOptions
	for _, opt := range opts {
		opt(&options)
	}

	directives := parser.ExtractDirectives(raw)
	if directives.Text == "" {
		return nil, ErrEmptyTask
	}

	folders, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load folders: %w", err)
	}
	if len(folders) == 0 {
		return nil, common.ErrNoCategories
	}

	outcome, answer := s.Classify(ctx, directives.Text, folders, settings)

	parsed := s.parser.Parse(directives.Text)
	chips := parsed.Suggestions
	if options.hasChips {
		chips = options.chips
	}
	attrs := capture.Collect(chips, s.now().Location())

	result := &Result{Parse: parsed, Outcome: outcome, Answer: answer}
	for _, f := range folders {
		if f.ID == outcome.DestinationCategoryID {
			result.Folder = f
			break
		}
	}

	var groupID *string
	if directives.GroupName != "" {
		group, err := s.resolveGroup(ctx, outcome.DestinationCategoryID, directives.GroupName)
		if err != nil {
			return nil, err
		}
		result.Group = group
		groupID = &group.ID
	}

	order, err := s.store.CountTasksInGroup(ctx, outcome.DestinationCategoryID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task position: %w", err)
	}

	task := &model.Task{
		FolderID:     outcome.DestinationCategoryID,
		TaskGroupID:  groupID,
		Text:         directives.Text,
		RawText:      raw,
		Priority:     directives.Priority,
		TaskType:     attrs.TaskType,
		Source:       outcome.Source,
		DueDate:      attrs.DueDate,
		Entities:     attrs.Entities,
		CategoryPath: attrs.CategoryPath,
		Order:        order,
	}
	if outcome.Source == model.SourceQueued {
		pending, err := s.store.CreateQueuedTask(ctx, task, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to create queued task: %w", err)
		}
		result.Pending = pending
	} else if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	result.Task = task

	s.logger.Info("task created",
		"task_id", task.ID,
		"folder_id", task.FolderID,
		"source", task.Source,
		"group", directives.GroupName,
		"priority", task.Priority)

	return result, nil
}

// Classify decides the destination folder of text. folders must not be
// empty. The second return value is the raw classifier answer, if any.
func (s *Service) Classify(ctx context.Context, text string, folders []model.Folder, settings Settings) (model.ClassificationOutcome, string) {
	first, _ := model.FirstFolder(folders)
	fallback := model.ClassificationOutcome{DestinationCategoryID: first.ID, Source: model.SourceFallbackFirst}

	if !settings.Online {
		return model.ClassificationOutcome{DestinationCategoryID: first.ID, Source: model.SourceQueued}, ""
	}
	if !settings.canClassify() || s.classifier == nil {
		return fallback, ""
	}

	folder, answer, ok, err := classify(ctx, s.classifier, text, folders)
	if err != nil {
		var unavailable *ClassifierUnavailableError
		if errors.As(err, &unavailable) {
			s.logger.Warn("classifier unavailable, using first folder",
				"folder", first.Name,
				"error", unavailable.Err)
		}
		return fallback, ""
	}
	if !ok {
		s.logger.Debug("classifier answer matched no folder",
			"answer", answer,
			"folder", first.Name)
		return fallback, answer
	}

	return model.ClassificationOutcome{DestinationCategoryID: folder.ID, Source: model.SourceAI}, answer
}

// resolveGroup finds the folder's group named name, ignoring case, or
// creates it.
func (s *Service) resolveGroup(ctx context.Context, folderID, name string) (*model.TaskGroup, error) {
	groups, err := s.store.ListTaskGroups(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	for i := range groups {
		if strings.EqualFold(groups[i].Name, name) {
			return &groups[i], nil
		}
	}

	group, err := s.store.CreateTaskGroup(ctx, folderID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create group %q: %w", name, err)
	}
	s.logger.Debug("created task group", "folder_id", folderID, "group", name)
	return group, nil
}
