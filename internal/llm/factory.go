package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tareas/internal/common"
)

// NewClient creates a raw prompt-completion client for the configured
// provider. The endpoint provider has no prompt interface and is rejected.
func NewClient(cfg Config) (Client, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI:
		client, err = newOpenAIClient(cfg)
	case ProviderAnthropic, "":
		client, err = newAnthropicClient(cfg)
	case ProviderGemini:
		client, err = newGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}

	if err != nil {
		return nil, err
	}
	return client, nil
}

func newBackend(cfg Config) (taskClassifier, error) {
	if strings.EqualFold(cfg.Provider, ProviderEndpoint) {
		endpoint, err := newEndpointClient(cfg)
		if err != nil {
			return nil, err
		}
		return endpoint, nil
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return promptClassifier{client: client}, nil
}
