package capture

import (
	"sync"
	"time"

	"github.com/Veraticus/tareas/internal/parser"
)

// DefaultDebounce is the quiet period before a re-parse runs.
const DefaultDebounce = 150 * time.Millisecond

// Debouncer re-parses input after a quiet period. Every Schedule supersedes
// the previous one: a run whose sequence number is no longer the newest when
// it finishes is discarded, so a stale parse never reaches deliver.
type Debouncer struct {
	timer   *time.Timer
	parse   func(string) parser.Result
	deliver func(parser.Result)
	mu      sync.Mutex
	delay   time.Duration
	seq     uint64
	stopped bool
}

// NewDebouncer creates a debouncer. deliver runs on a timer goroutine while
// the debouncer holds its lock, so it must not call Schedule or Stop.
func NewDebouncer(delay time.Duration, parse func(string) parser.Result, deliver func(parser.Result)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{
		delay:   delay,
		parse:   parse,
		deliver: deliver,
	}
}

// Schedule arms a parse of text, cancelling any run that has not fired yet.
func (d *Debouncer) Schedule(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.run(seq, text)
	})
}

func (d *Debouncer) run(seq uint64, text string) {
	if !d.current(seq) {
		return
	}

	result := d.parse(text)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || seq != d.seq {
		return
	}
	d.deliver(result)
}

func (d *Debouncer) current(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && seq == d.seq
}

// Stop cancels any pending run. Further Schedule calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
