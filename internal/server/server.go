// Package server exposes the classifier over HTTP as POST /api/classify so
// clients without a provider credential can classify through it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/tareas/internal/llm"
)

// Classifier answers classification requests. It is satisfied by
// *llm.Classifier.
type Classifier interface {
	ClassifyTask(ctx context.Context, req llm.TaskRequest) (llm.TaskResponse, error)
}

// Server is the classify endpoint.
type Server struct {
	classifier Classifier
	logger     *slog.Logger
	router     *gin.Engine
}

// New creates the server. A nil classifier makes every classify request fail
// with 500, the way a deployment without a provider key does.
func New(classifier Classifier, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	s := &Server{
		classifier: classifier,
		logger:     logger,
		router:     router,
	}

	router.Use(gin.Recovery(), s.logRequests)
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	api := router.Group("/api")
	{
		api.POST("/classify", s.handleClassify)
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("classify endpoint listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}

func (s *Server) handleClassify(c *gin.Context) {
	if s.classifier == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "classifier not configured"})
		return
	}

	var req llm.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.TaskText) == "" || len(req.Folders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskText and folders are required"})
		return
	}

	resp, err := s.classifier.ClassifyTask(c.Request.Context(), req.TaskRequest())
	if err != nil {
		s.logger.Error("classification failed", "error", err)
		body := gin.H{"error": "classification provider error"}
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			body["status"] = statusErr.StatusCode
		}
		c.JSON(http.StatusBadGateway, body)
		return
	}

	out := llm.ClassifyResponse{}
	if resp.CategoryName != "" {
		name := resp.CategoryName
		out.FolderName = &name
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("http request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start))
}
