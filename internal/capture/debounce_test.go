package capture

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Veraticus/tareas/internal/model"
	"github.com/Veraticus/tareas/internal/parser"
)

func echoParse(text string) parser.Result {
	return parser.Result{Suggestions: []model.Suggestion{{Kind: model.SuggestionEntity, Value: text}}}
}

func TestDebouncer_DeliversOnlyNewest(t *testing.T) {
	defer goleak.VerifyNone(t)

	delivered := make(chan parser.Result, 10)
	d := NewDebouncer(20*time.Millisecond, echoParse, func(r parser.Result) {
		delivered <- r
	})
	defer d.Stop()

	for _, text := range []string{"r", "re", "rev", "revisar"} {
		d.Schedule(text)
	}

	select {
	case r := <-delivered:
		require.Len(t, r.Suggestions, 1)
		assert.Equal(t, "revisar", r.Suggestions[0].Value)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	select {
	case r := <-delivered:
		t.Fatalf("unexpected extra delivery: %+v", r)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_StaleRunDiscarded(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	var parsing sync.WaitGroup
	parsing.Add(1)
	var once sync.Once

	var delivered []string
	var mu sync.Mutex
	done := make(chan struct{}, 2)

	d := NewDebouncer(10*time.Millisecond, func(text string) parser.Result {
		if text == "slow" {
			once.Do(parsing.Done)
			<-release
		}
		return echoParse(text)
	}, func(r parser.Result) {
		mu.Lock()
		delivered = append(delivered, r.Suggestions[0].Value)
		mu.Unlock()
		done <- struct{}{}
	})
	defer d.Stop()

	d.Schedule("slow")
	parsing.Wait()

	// A newer input arrives while the slow parse is running.
	d.Schedule("fast")
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("newest result not delivered")
	}
	close(release)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"fast"}, delivered)
}

func TestDebouncer_Stop(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func(text string) parser.Result {
		calls.Add(1)
		return echoParse(text)
	}, func(parser.Result) {})

	d.Schedule("hola")
	d.Stop()
	d.Schedule("adios")
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, calls.Load())
}

func TestNewDebouncer_DefaultDelay(t *testing.T) {
	d := NewDebouncer(0, echoParse, func(parser.Result) {})
	assert.Equal(t, DefaultDebounce, d.delay)
}
