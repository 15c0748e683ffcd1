package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tareas/internal/intake"
	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/parser"
)

type submitCall struct {
	raw   string
	chips []model.Suggestion
}

func newTestModel(t *testing.T, submit SubmitFunc) Model {
	t.Helper()
	friday := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	m := newModel(context.Background(), Config{
		Parser:   parser.MustNew(parser.WithClock(func() time.Time { return friday })),
		Submit:   submit,
		Debounce: time.Millisecond,
	})
	t.Cleanup(m.debouncer.Stop)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// awaitParse feeds the model the last parse delivered before the debouncer
// goes quiet.
func awaitParse(t *testing.T, m Model) Model {
	t.Helper()
	var last *parser.Result
	deadline := time.After(time.Second)
	for {
		select {
		case r := <-m.parsed:
			last = &r
		case <-time.After(50 * time.Millisecond):
			if last != nil {
				m, _ = update(t, m, parsedMsg{result: *last})
				return m
			}
		case <-deadline:
			t.Fatal("no parse delivered")
			return m
		}
	}
}

func TestModel_TypingRefreshesChips(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "llamar a Marta mañana")
	m = awaitParse(t, m)

	chips := m.chips()
	require.NotEmpty(t, chips)

	values := make([]string, 0, len(chips))
	for _, c := range chips {
		values = append(values, c.Value)
	}
	assert.Contains(t, values, "Marta")
	assert.Contains(t, values, "2025-01-11")
	assert.Contains(t, m.View(), "Marta")
}

func TestModel_AcceptAndDismiss(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "llamar a Marta mañana")
	m = awaitParse(t, m)

	first, _, ok := m.focused()
	require.True(t, ok)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	applied := m.session.Applied()
	require.Len(t, applied, 1)
	assert.Equal(t, first.Key(), applied[0].Key())

	// The cursor stays on the applied chip, which ctrl+x dismisses for good.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Empty(t, m.session.Applied())

	m = typeText(t, m, " ")
	m = awaitParse(t, m)
	for _, c := range m.chips() {
		assert.NotEqual(t, first.Key(), c.Key(), "dismissed chips do not come back")
	}
}

func TestModel_CursorWraps(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "llamar a Marta mañana")
	m = awaitParse(t, m)

	n := len(m.chips())
	require.Greater(t, n, 1)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, n-1, m.cursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.cursor)
}

func TestModel_Submit(t *testing.T) {
	var calls []submitCall
	submit := func(_ context.Context, raw string, chips []model.Suggestion) (*intake.Result, error) {
		calls = append(calls, submitCall{raw: raw, chips: chips})
		return &intake.Result{
			Task:    &model.Task{ID: "t1"},
			Folder:  model.Folder{Name: "Trabajo"},
			Outcome: model.ClassificationOutcome{Source: model.SourceAI},
		}, nil
	}

	m := newTestModel(t, submit)
	// Submit before the debounced parse lands still carries the chips.
	m = typeText(t, m, "llamar a Marta > Clientes high")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	msg := cmd()
	m, _ = update(t, m, msg)

	require.Len(t, calls, 1)
	assert.Equal(t, "llamar a Marta > Clientes high", calls[0].raw)
	var hasMarta bool
	for _, c := range calls[0].chips {
		if c.Kind == model.SuggestionEntity && c.Value == "Marta" {
			hasMarta = true
		}
	}
	assert.True(t, hasMarta)

	assert.False(t, m.busy)
	assert.Empty(t, m.input.Value())
	assert.Empty(t, m.chips())
	assert.Equal(t, 1, m.Created())
	assert.Contains(t, m.View(), "Tarea creada en Trabajo")
}

func TestModel_SubmitClearsLateChips(t *testing.T) {
	submit := func(context.Context, string, []model.Suggestion) (*intake.Result, error) {
		return &intake.Result{
			Task:    &model.Task{ID: "t1"},
			Folder:  model.Folder{Name: "Trabajo"},
			Outcome: model.ClassificationOutcome{Source: model.SourceQueued},
		}, nil
	}

	m := newTestModel(t, submit)
	m = typeText(t, m, "llamar a Marta mañana")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.Empty(t, m.chips())

	// The parse of the submitted text must not repopulate the cleared input.
	m = awaitParse(t, m)
	assert.Empty(t, m.chips())
	assert.Empty(t, m.session.Final())
}

func TestModel_SubmitError(t *testing.T) {
	submit := func(context.Context, string, []model.Suggestion) (*intake.Result, error) {
		return nil, errors.New("no folders available")
	}

	m := newTestModel(t, submit)
	m = typeText(t, m, "tarea")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, "tarea", m.input.Value(), "input is kept so the user can retry")
	assert.Contains(t, m.View(), "no folders available")
	assert.Equal(t, 0, m.Created())
}

func TestModel_SubmitIgnoresBlankInput(t *testing.T) {
	called := false
	m := newTestModel(t, func(context.Context, string, []model.Suggestion) (*intake.Result, error) {
		called = true
		return nil, nil
	})

	m = typeText(t, m, "   ")
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, called)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeText(t, m, "algo")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
	assert.Empty(t, m.chips())
}

func TestRun_RequiresDependencies(t *testing.T) {
	_, err := Run(context.Background(), Config{})
	assert.Error(t, err)

	_, err = Run(context.Background(), Config{Parser: parser.MustNew()})
	assert.Error(t, err)
}
