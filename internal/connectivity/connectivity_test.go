package connectivity

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Veraticus/tareas/internal/common"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeAuto},
		{in: "auto", want: ModeAuto},
		{in: " ONLINE ", want: ModeOnline},
		{in: "offline", want: ModeOffline},
		{in: "sometimes", want: ModeAuto, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecker_OnlineProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	checker := New(Config{Address: addr, Timeout: time.Second}, nil)
	assert.True(t, checker.Online(context.Background()))

	require.NoError(t, ln.Close())
	assert.False(t, checker.Online(context.Background()))
}

func TestChecker_ForcedModes(t *testing.T) {
	// 192.0.2.0/24 is reserved for documentation and never answers.
	online := New(Config{Address: "192.0.2.1:9", Mode: ModeOnline, Timeout: 10 * time.Millisecond}, nil)
	assert.True(t, online.Online(context.Background()))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	offline := New(Config{Address: ln.Addr().String(), Mode: ModeOffline}, nil)
	assert.False(t, offline.Online(context.Background()))
	assert.Equal(t, ModeOffline, offline.Mode())
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{}, nil)
	assert.Equal(t, DefaultProbeAddress, c.address)
	assert.Equal(t, ModeAuto, c.mode)
	assert.Equal(t, 30*time.Second, c.interval)
	assert.Equal(t, 3*time.Second, c.timeout)
}

func TestChecker_WatchEmitsOnReconnect(t *testing.T) {
	defer goleak.VerifyNone(t)

	var up atomic.Bool
	checker := New(Config{Address: "probe:1", Interval: 5 * time.Millisecond}, nil)
	checker.dial = func(_ context.Context, _, _ string) (net.Conn, error) {
		if !up.Load() {
			return nil, errors.New("unreachable")
		}
		client, server := net.Pipe()
		_ = server.Close()
		return client, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := checker.Watch(ctx)

	select {
	case <-events:
		t.Fatal("no event expected while offline")
	case <-time.After(30 * time.Millisecond):
	}

	up.Store(true)
	select {
	case _, ok := <-events:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("expected an event after reconnecting")
	}

	cancel()
	for range events {
	}
}

func TestChecker_WatchClosesOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	checker := New(Config{Mode: ModeOnline, Interval: 5 * time.Millisecond}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	events := checker.Watch(ctx)
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
}
