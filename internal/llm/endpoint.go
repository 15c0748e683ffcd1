package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Veraticus/tareas/internal/common"
)

// ClassifyRequest is the JSON body of POST /api/classify.
type ClassifyRequest struct {
	TaskText string       `json:"taskText"`
	Folders  []FolderInfo `json:"folders"`
}

// FolderInfo describes one folder in a ClassifyRequest.
type FolderInfo struct {
	Name       string   `json:"name"`
	LLMContext string   `json:"llmContext"`
	Keywords   []string `json:"keywords"`
}

// ClassifyResponse is the JSON reply of POST /api/classify. A null
// folderName means the provider produced no text.
type ClassifyResponse struct {
	FolderName *string `json:"folderName"`
}

// NewClassifyRequest converts a TaskRequest to its wire form.
func NewClassifyRequest(req TaskRequest) ClassifyRequest {
	folders := make([]FolderInfo, 0, len(req.Categories))
	for _, c := range req.Categories {
		keywords := c.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		folders = append(folders, FolderInfo{Name: c.Name, LLMContext: c.ContextHint, Keywords: keywords})
	}
	return ClassifyRequest{TaskText: req.TaskText, Folders: folders}
}

// TaskRequest converts the wire form back to a TaskRequest.
func (r ClassifyRequest) TaskRequest() TaskRequest {
	categories := make([]CategoryContext, 0, len(r.Folders))
	for _, f := range r.Folders {
		categories = append(categories, CategoryContext{Name: f.Name, ContextHint: f.LLMContext, Keywords: f.Keywords})
	}
	return TaskRequest{TaskText: r.TaskText, Categories: categories}
}

// endpointClient delegates classification to a remote classify endpoint,
// which holds the provider credential itself.
type endpointClient struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

func newEndpointClient(cfg Config) (*endpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: classify endpoint URL", common.ErrMissingConfig)
	}
	return &endpointClient{
		httpClient: newHTTPClient(cfg.timeout()),
		url:        strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
	}, nil
}

func (c *endpointClient) classifyTask(ctx context.Context, req TaskRequest) (TaskResponse, error) {
	headers := map[string]string{}
	if c.apiKey != "" {
		headers["Authorization"] = "Bearer " + c.apiKey
	}

	body, err := postJSON(ctx, c.httpClient, c.url, NewClassifyRequest(req), headers)
	if err != nil {
		return TaskResponse{}, fmt.Errorf("classify endpoint: %w", err)
	}

	var resp ClassifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return TaskResponse{}, fmt.Errorf("classify endpoint: failed to parse response: %w", err)
	}
	if resp.FolderName == nil {
		return TaskResponse{}, nil
	}
	return TaskResponse{CategoryName: cleanAnswer(*resp.FolderName)}, nil
}
