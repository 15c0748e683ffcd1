package tui

import (
	"github.com/Veraticus/tareas/internal/intake"
	"github.com/Veraticus/tareas/internal/parser"
)

// parsedMsg carries the newest debounced parse of the input.
type parsedMsg struct {
	result parser.Result
}

// createdMsg reports the outcome of a submit.
type createdMsg struct {
	err    error
	result *intake.Result
	raw    string
}
