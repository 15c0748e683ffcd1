package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads trimmed, non-empty lines and gives up when its context is
// canceled. A read still blocked on the underlying reader finishes in the
// background and its line is delivered to the next call.
type LineReader struct {
	lines chan lineResult
	src   *bufio.Scanner
	busy  bool
}

type lineResult struct {
	err  error
	line string
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		src:   bufio.NewScanner(r),
		lines: make(chan lineResult, 1),
	}
}

// ReadLine returns the next non-blank line, io.EOF at the end of input, or
// ErrInputCancelled.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	for {
		if !r.busy {
			r.busy = true
			go r.scan()
		}

		select {
		case <-ctx.Done():
			return "", ErrInputCancelled
		case res := <-r.lines:
			r.busy = false
			if res.err != nil {
				return "", res.err
			}
			if res.line == "" {
				continue
			}
			return res.line, nil
		}
	}
}

func (r *LineReader) scan() {
	if r.src.Scan() {
		r.lines <- lineResult{line: strings.TrimSpace(r.src.Text())}
		return
	}
	err := r.src.Err()
	if err == nil {
		err = io.EOF
	}
	r.lines <- lineResult{err: err}
}
