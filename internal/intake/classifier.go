package intake

import (
	"context"
	"fmt"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/llm"
	"github.com/Veraticus/tareas/internal/model"
)

// Classifier picks a folder name for a task. It is satisfied by
// *llm.Classifier.
type Classifier interface {
	ClassifyTask(ctx context.Context, req llm.TaskRequest) (llm.TaskResponse, error)
}

// ClassifierUnavailableError reports that the classifier could not be
// reached or answered with a failure status. Callers treat it as a miss.
type ClassifierUnavailableError struct {
	Err error
}

func (e *ClassifierUnavailableError) Error() string {
	return fmt.Sprintf("classifier unavailable: %v", e.Err)
}

// Unwrap exposes both the sentinel and the transport error.
func (e *ClassifierUnavailableError) Unwrap() []error {
	return []error{common.ErrClassifierUnavailable, e.Err}
}

// newTaskRequest describes every folder to the classifier. Context hints and
// keywords are prompt material only and are never matched locally.
func newTaskRequest(text string, folders []model.Folder) llm.TaskRequest {
	categories := make([]llm.CategoryContext, 0, len(folders))
	for _, f := range folders {
		categories = append(categories, llm.CategoryContext{
			Name:        f.Name,
			ContextHint: f.ContextHint,
			Keywords:    f.Keywords,
		})
	}
	return llm.TaskRequest{TaskText: text, Categories: categories}
}

// classify asks c for a folder and resolves the answer locally. A failed call
// yields *ClassifierUnavailableError; an unresolvable answer yields ok=false
// with a nil error.
func classify(ctx context.Context, c Classifier, text string, folders []model.Folder) (folder model.Folder, answer string, ok bool, err error) {
	resp, err := c.ClassifyTask(ctx, newTaskRequest(text, folders))
	if err != nil {
		return model.Folder{}, "", false, &ClassifierUnavailableError{Err: err}
	}
	folder, ok = ResolveCategoryName(resp.CategoryName, folders)
	return folder, resp.CategoryName, ok, nil
}
