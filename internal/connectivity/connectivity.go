// Package connectivity reports whether the network is reachable by probing a
// TCP address, and signals when it comes back.
package connectivity

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/service"
)

// Mode selects how Online is answered.
type Mode string

const (
	// ModeAuto probes the network.
	ModeAuto Mode = "auto"
	// ModeOnline always reports online.
	ModeOnline Mode = "online"
	// ModeOffline always reports offline.
	ModeOffline Mode = "offline"
)

// DefaultProbeAddress is dialed when no address is configured.
const DefaultProbeAddress = "api.anthropic.com:443"

// ParseMode converts a config value to a Mode. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeOnline:
		return ModeOnline, nil
	case ModeOffline:
		return ModeOffline, nil
	default:
		return ModeAuto, fmt.Errorf("%w: connectivity mode %q (want auto, online or offline)", common.ErrInvalidConfig, s)
	}
}

// Config configures a Checker.
type Config struct {
	Address  string
	Mode     Mode
	Interval time.Duration
	Timeout  time.Duration
}

type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Checker probes a TCP address to decide whether the machine is online.
type Checker struct {
	dial     dialFunc
	logger   *slog.Logger
	address  string
	mode     Mode
	interval time.Duration
	timeout  time.Duration
}

var _ service.Connectivity = (*Checker)(nil)

// New creates a checker. Zero durations get defaults of 30s between probes
// and a 3s dial timeout.
func New(cfg Config, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Address == "" {
		cfg.Address = DefaultProbeAddress
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeAuto
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	var dialer net.Dialer
	return &Checker{
		dial:     dialer.DialContext,
		logger:   logger,
		address:  cfg.Address,
		mode:     cfg.Mode,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
	}
}

// Mode returns the configured mode.
func (c *Checker) Mode() Mode {
	return c.mode
}

// Online reports whether the probe address accepts a TCP connection.
func (c *Checker) Online(ctx context.Context) bool {
	switch c.mode {
	case ModeOnline:
		return true
	case ModeOffline:
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dial(ctx, "tcp", c.address)
	if err != nil {
		c.logger.Debug("connectivity probe failed", "address", c.address, "error", err)
		return false
	}
	_ = conn.Close()
	return true
}

// Watch probes every interval and emits once per offline-to-online
// transition. The channel is closed when ctx is done. A forced mode never
// transitions, so its channel only closes.
func (c *Checker) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		wasOnline := c.Online(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			online := c.Online(ctx)
			if online && !wasOnline {
				c.logger.Info("network reachable again", "address", c.address)
				select {
				case ch <- struct{}{}:
				default:
				}
			} else if !online && wasOnline {
				c.logger.Info("network unreachable", "address", c.address)
			}
			wasOnline = online
		}
	}()

	return ch
}
