package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/parser"
	"github.com/Veraticus/tareas/internal/pathtree"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestInterruptHandler_Signal(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Las tareas pendientes siguen en cola")

	ctx, cancel := handler.HandleInterrupts(context.Background())
	defer cancel()
	assert.False(t, handler.WasInterrupted())

	handler.signals <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled")
	}
	assert.Eventually(t, handler.WasInterrupted, time.Second, 5*time.Millisecond)
	assert.Contains(t, output.String(), "Interrupted")
	assert.Contains(t, output.String(), "Las tareas pendientes siguen en cola")
}

func TestInterruptHandler_CancelWithoutSignal(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "")

	ctx, cancel := handler.HandleInterrupts(context.Background())
	cancel()
	<-ctx.Done()

	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("  comprar pan \n\n\nllamar a Marta\n"))
	ctx := context.Background()

	line, err := r.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "comprar pan", line)

	line, err = r.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "llamar a Marta", line)

	_, err = r.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_Cancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	r := NewLineReader(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)

	// The blocked read is not lost.
	go func() { _, _ = pw.Write([]byte("tarde\n")) }()
	line, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tarde", line)
}

func TestFormatConfidence(t *testing.T) {
	assert.Equal(t, "0%", FormatConfidence(0))
	assert.Equal(t, "88%", FormatConfidence(0.875))
	assert.Equal(t, "100%", FormatConfidence(1))
}

func TestFormatSource(t *testing.T) {
	assert.Contains(t, FormatSource(model.SourceAI), "IA")
	assert.Contains(t, FormatSource(model.SourceQueued), "pendiente")
	assert.Contains(t, FormatSource(model.SourceFallbackFirst), "primera carpeta")
	assert.Equal(t, "other", FormatSource("other"))
}

func TestRenderChips(t *testing.T) {
	applied := []model.Suggestion{{Kind: model.SuggestionEntity, Value: "Marta", Label: "Marta", Confidence: 0.7}}
	pending := []model.Suggestion{{Kind: model.SuggestionDate, Value: "2025-01-11", Label: "Mañana", Confidence: 0.85}}

	out := RenderChips(applied, pending)
	assert.Contains(t, out, "Marta")
	assert.Contains(t, out, "Mañana 85%")
	assert.NotContains(t, out, "70%", "applied chips hide their confidence")

	assert.Contains(t, RenderChips(nil, nil), "sin sugerencias")
}

func TestRenderParseResult(t *testing.T) {
	p := parser.MustNew(parser.WithClock(func() time.Time {
		return time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	}))
	out := RenderParseResult(p.Parse("Revisar docs de Antai con Marta mañana"))

	assert.Contains(t, out, "Antai / Documentación")
	assert.Contains(t, out, "Revisar")
	assert.Contains(t, out, "Marta")
	assert.Contains(t, out, "2025-01-11")
	assert.Contains(t, out, "Confianza global:")
}

func TestRenderTree(t *testing.T) {
	tree := pathtree.Build([]model.Task{
		{ID: "1", CategoryPath: []string{"Antai", "Documentación"}},
		{ID: "2", CategoryPath: []string{"Antai"}},
		{ID: "3"},
	})

	lines := strings.Split(RenderTree(tree), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], pathtree.UnassignedName+" (1)")
	assert.Equal(t, "Antai (1)", lines[1])
	assert.Equal(t, "  Documentación (1)", lines[2])
}

func TestRenderTask(t *testing.T) {
	due := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	out := RenderTask(model.Task{Text: "Llamar a Marta", Priority: model.PriorityHigh, TaskType: model.TaskTypeCall, DueDate: &due})
	assert.Contains(t, out, "Llamar a Marta")
	assert.Contains(t, out, "[high]")
	assert.Contains(t, out, "Llamada")
	assert.Contains(t, out, "2025-01-11")
}
