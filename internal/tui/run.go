package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tareas/internal/capture"
	"github.com/Veraticus/tareas/internal/parser"
)

// Config holds the capture screen dependencies.
type Config struct {
	Parser   *parser.Parser
	Submit   SubmitFunc
	Debounce time.Duration
}

// Run shows the capture screen until the user quits or ctx is canceled and
// returns the number of tasks created.
func Run(ctx context.Context, cfg Config) (int, error) {
	if cfg.Parser == nil {
		return 0, fmt.Errorf("parser is required")
	}
	if cfg.Submit == nil {
		return 0, fmt.Errorf("submit function is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = capture.DefaultDebounce
	}

	m := newModel(ctx, cfg)
	defer m.debouncer.Stop()

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if fm, ok := final.(Model); ok {
		if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return fm.Created(), nil
		}
		return fm.Created(), err
	}
	return 0, err
}
