package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/llm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockClassifier struct {
	ClassifyFunc func(ctx context.Context, req llm.TaskRequest) (llm.TaskResponse, error)
	last         llm.TaskRequest
}

func (m *mockClassifier) ClassifyTask(ctx context.Context, req llm.TaskRequest) (llm.TaskResponse, error) {
	m.last = req
	return m.ClassifyFunc(ctx, req)
}

func answer(name string) func(context.Context, llm.TaskRequest) (llm.TaskResponse, error) {
	return func(context.Context, llm.TaskRequest) (llm.TaskResponse, error) {
		return llm.TaskResponse{CategoryName: name}, nil
	}
}

const validBody = `{"taskText":"llamar al fontanero","folders":[{"name":"Casa","llmContext":"hogar","keywords":["fontanero"]},{"name":"Trabajo","llmContext":"","keywords":[]}]}`

func TestHandleClassify(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		classify   func(context.Context, llm.TaskRequest) (llm.TaskResponse, error)
		noClient   bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "classified",
			method:     http.MethodPost,
			body:       validBody,
			classify:   answer("Casa"),
			wantStatus: http.StatusOK,
			wantBody:   `{"folderName":"Casa"}`,
		},
		{
			name:       "no text from provider",
			method:     http.MethodPost,
			body:       validBody,
			classify:   answer(""),
			wantStatus: http.StatusOK,
			wantBody:   `{"folderName":null}`,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"error":"Method not allowed"}`,
		},
		{
			name:       "missing classifier",
			method:     http.MethodPost,
			body:       validBody,
			noClient:   true,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"classifier not configured"}`,
		},
		{
			name:       "missing text",
			method:     http.MethodPost,
			body:       `{"taskText":"","folders":[{"name":"Casa"}]}`,
			classify:   answer("Casa"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"taskText and folders are required"}`,
		},
		{
			name:       "no folders",
			method:     http.MethodPost,
			body:       `{"taskText":"hola","folders":[]}`,
			classify:   answer("Casa"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"taskText and folders are required"}`,
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			body:       `{"taskText":`,
			classify:   answer("Casa"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"taskText and folders are required"}`,
		},
		{
			name:   "provider status error",
			method: http.MethodPost,
			body:   validBody,
			classify: func(context.Context, llm.TaskRequest) (llm.TaskResponse, error) {
				return llm.TaskResponse{}, fmt.Errorf("classification failed: %w",
					&common.RetryableError{Err: &llm.StatusError{StatusCode: 401, Body: "bad key"}})
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"classification provider error","status":401}`,
		},
		{
			name:   "transport error",
			method: http.MethodPost,
			body:   validBody,
			classify: func(context.Context, llm.TaskRequest) (llm.TaskResponse, error) {
				return llm.TaskResponse{}, errors.New("dial tcp: timeout")
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"classification provider error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var srv *Server
			if tt.noClient {
				srv = New(nil, nil)
			} else {
				srv = New(&mockClassifier{ClassifyFunc: tt.classify}, nil)
			}

			req := httptest.NewRequest(tt.method, "/api/classify", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestHandleClassify_RequestConversion(t *testing.T) {
	mock := &mockClassifier{ClassifyFunc: answer("Casa")}
	srv := New(mock, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewBufferString(validBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "llamar al fontanero", mock.last.TaskText)
	require.Len(t, mock.last.Categories, 2)
	assert.Equal(t, llm.CategoryContext{Name: "Casa", ContextHint: "hogar", Keywords: []string{"fontanero"}}, mock.last.Categories[0])

	var resp llm.ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.FolderName)
	assert.Equal(t, "Casa", *resp.FolderName)
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := New(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}
