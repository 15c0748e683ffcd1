package llm

import (
	"context"
	"time"
)

// Client is a prompt-completion transport for one provider.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// taskClassifier classifies a task without going through a prompt. The
// remote endpoint provider implements it directly.
type taskClassifier interface {
	classifyTask(ctx context.Context, req TaskRequest) (TaskResponse, error)
}

// CategoryContext is what the classifier knows about one folder.
type CategoryContext struct {
	Name        string
	ContextHint string
	Keywords    []string
}

// TaskRequest asks which folder a task belongs to.
type TaskRequest struct {
	TaskText   string
	Categories []CategoryContext
}

// TaskResponse carries the classifier's raw answer. CategoryName is empty
// when the provider returned nothing; it is not guaranteed to name one of
// the requested folders.
type TaskResponse struct {
	CategoryName string
}

// Config holds configuration for the LLM classifier.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Endpoint    string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderEndpoint  = "endpoint"
)

const (
	defaultMaxTokens = 50
	defaultTimeout   = 30 * time.Second
)

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return defaultMaxTokens
	}
	return c.MaxTokens
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}
