package intake

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/tareas/internal/llm"
	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/parser"
	"github.com/Veraticus/tareas/internal/storage"
	"github.com/Veraticus/tareas/internal/testutil"
)

// fakeClassifier answers by task text. Texts missing from answers get
// fallback; texts in failures get that error.
type fakeClassifier struct {
	answers  map[string]string
	failures map[string]error
	fallback string
	requests []llm.TaskRequest
	mu       sync.Mutex
}

func (f *fakeClassifier) ClassifyTask(_ context.Context, req llm.TaskRequest) (llm.TaskResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)

	if err, ok := f.failures[req.TaskText]; ok {
		return llm.TaskResponse{}, err
	}
	if answer, ok := f.answers[req.TaskText]; ok {
		return llm.TaskResponse{CategoryName: answer}, nil
	}
	return llm.TaskResponse{CategoryName: f.fallback}, nil
}

func (f *fakeClassifier) calls() []llm.TaskRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.TaskRequest(nil), f.requests...)
}

func newTestStore(t *testing.T, folders ...string) (*storage.SQLiteStorage, []model.Folder) {
	t.Helper()
	db := testutil.SetupTestDB(t, folders...)
	return db.Storage, db.Folders
}

func newTestService(store Store, classifier Classifier) *Service {
	friday := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	p := parser.MustNew(parser.WithClock(func() time.Time { return friday }))
	svc := New(store, classifier, p, nil)
	svc.now = func() time.Time { return friday }
	return svc
}

var (
	online  = Settings{APIKey: "sk-test", Online: true}
	offline = Settings{APIKey: "sk-test", Online: false}
	noKey   = Settings{Online: true}
)
