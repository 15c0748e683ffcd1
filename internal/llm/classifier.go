package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/service"
)

// Classifier asks an AI provider which folder a task belongs to. Answers are
// cached per request and calls are rate limited and retried.
type Classifier struct {
	backend     taskClassifier
	cache       *responseCache
	logger      *slog.Logger
	rateLimiter *rateLimiter
	provider    string
	retryOpts   service.RetryOptions
}

// promptClassifier adapts a prompt-completion Client to taskClassifier.
type promptClassifier struct {
	client Client
}

func (p promptClassifier) classifyTask(ctx context.Context, req TaskRequest) (TaskResponse, error) {
	text, err := p.client.Complete(ctx, BuildPrompt(req))
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{CategoryName: cleanAnswer(text)}, nil
}

// NewClassifier creates a classifier for the configured provider.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return newClassifierWithBackend(cfg, backend, logger), nil
}

func newClassifierWithBackend(cfg Config, backend taskClassifier, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Classifier{
		backend:     backend,
		cache:       newResponseCache(cfg.CacheTTL),
		logger:      logger,
		rateLimiter: newRateLimiter(cfg.RateLimit),
		provider:    cfg.Provider,
		retryOpts:   retryOpts,
	}
}

// ClassifyTask returns the provider's answer for req. The answer is the raw
// folder name the model chose; matching it against real folders is up to the
// caller.
func (c *Classifier) ClassifyTask(ctx context.Context, req TaskRequest) (TaskResponse, error) {
	key := cacheKey(req)
	if resp, found := c.cache.get(key); found {
		c.logger.Debug("cache hit for task", "provider", c.provider, "answer", resp.CategoryName)
		return resp, nil
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return TaskResponse{}, err
	}

	var resp TaskResponse
	err := common.WithRetry(ctx, func() error {
		var classifyErr error
		resp, classifyErr = c.backend.classifyTask(ctx, req)
		return classifyErr
	}, c.retryOpts)
	if err != nil {
		return TaskResponse{}, fmt.Errorf("classification failed: %w", err)
	}

	c.cache.set(key, resp)
	c.logger.Debug("classified task", "provider", c.provider, "answer", resp.CategoryName)
	return resp, nil
}

// Close releases the background goroutines of the cache and rate limiter.
func (c *Classifier) Close() error {
	c.cache.Close()
	c.rateLimiter.Close()
	return nil
}
