// Package tui implements the interactive capture screen: a text input whose
// suggestions are refreshed as the user types and can be applied or
// dismissed before the task is created.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tareas/internal/capture"
	"github.com/Veraticus/tareas/internal/cli"
	"github.com/Veraticus/tareas/internal/intake"
	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/parser"
)

// SubmitFunc creates a task from the raw input and the chips on screen.
type SubmitFunc func(ctx context.Context, raw string, chips []model.Suggestion) (*intake.Result, error)

// Model holds the capture screen state.
type Model struct {
	ctx       context.Context
	err       error
	session   *capture.Session
	debouncer *capture.Debouncer
	parsed    chan parser.Result
	parse     func(string) parser.Result
	submit    SubmitFunc
	keymap    KeyMap
	help      help.Model
	input     textinput.Model
	status    string
	created   int
	cursor    int
	width     int
	busy      bool
	quitting  bool
}

func newModel(ctx context.Context, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "Revisar docs de Antai con Marta mañana > Grupo high"
	input.Prompt = "› "
	input.CharLimit = 500
	input.Focus()

	p := cfg.Parser
	parse := func(text string) parser.Result {
		return p.Parse(parser.ExtractDirectives(text).Text)
	}

	parsed := make(chan parser.Result, 1)
	deliver := func(r parser.Result) {
		select {
		case <-parsed:
		default:
		}
		parsed <- r
	}

	return Model{
		ctx:       ctx,
		session:   capture.NewSession(),
		debouncer: capture.NewDebouncer(cfg.Debounce, parse, deliver),
		parsed:    parsed,
		parse:     parse,
		submit:    cfg.Submit,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		input:     input,
	}
}

// Init starts the cursor blink and the parse listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForParse(m.parsed))
}

func waitForParse(ch <-chan parser.Result) tea.Cmd {
	return func() tea.Msg {
		return parsedMsg{result: <-ch}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case parsedMsg:
		m.session.Refresh(msg.result)
		m.clampCursor()
		return m, waitForParse(m.parsed)

	case createdMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.created++
		m.status = fmt.Sprintf("Tarea creada en %s", msg.result.Folder.Name)
		if msg.result.Group != nil {
			m.status += " / " + msg.result.Group.Name
		}
		m.status += " · " + cli.FormatSource(msg.result.Outcome.Source)
		m.input.Reset()
		m.session.Reset()
		m.debouncer.Schedule("")
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.debouncer.Stop()
		m.session.Reset()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		return m.submitTask()

	case key.Matches(msg, m.keymap.NextChip):
		if n := len(m.chips()); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keymap.PrevChip):
		if n := len(m.chips()); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
		return m, nil

	case key.Matches(msg, m.keymap.Accept):
		if chip, applied, ok := m.focused(); ok && !applied {
			m.session.Accept(chip)
		}
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keymap.Dismiss):
		if chip, _, ok := m.focused(); ok {
			m.session.Dismiss(chip)
		}
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keymap.Remove):
		if chip, applied, ok := m.focused(); ok && applied {
			m.session.Remove(chip)
		}
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.input.Reset()
		m.session.Reset()
		m.debouncer.Schedule("")
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.debouncer.Schedule(after)
	}
	return m, cmd
}

// submitTask refreshes the chips synchronously so a submit right after typing
// never uses stale suggestions.
func (m Model) submitTask() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	if m.busy || strings.TrimSpace(raw) == "" || m.submit == nil {
		return m, nil
	}

	m.session.Refresh(m.parse(raw))
	chips := m.session.Final()
	m.busy = true
	m.status = "Clasificando…"

	ctx, submit := m.ctx, m.submit
	return m, func() tea.Msg {
		res, err := submit(ctx, raw, chips)
		return createdMsg{result: res, err: err, raw: raw}
	}
}

// chips returns applied chips followed by pending ones, the order they are
// drawn in.
func (m Model) chips() []model.Suggestion {
	return append(m.session.Applied(), m.session.Pending()...)
}

func (m Model) focused() (chip model.Suggestion, applied bool, ok bool) {
	chips := m.chips()
	if m.cursor < 0 || m.cursor >= len(chips) {
		return model.Suggestion{}, false, false
	}
	return chips[m.cursor], m.cursor < len(m.session.Applied()), true
}

func (m *Model) clampCursor() {
	n := len(m.chips())
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// Created returns how many tasks were created in this session.
func (m Model) Created() int {
	return m.created
}
