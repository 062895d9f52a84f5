// Package ping implements the latency probe that shells out to the system
// ping binary.
//
// It sends a fixed number of echo requests, parses the round-trip summary
// printed at the end of the run, and reports the average as the latency_ms
// metric. Both the Linux ("rtt min/avg/max/mdev") and the BSD/macOS
// ("round-trip min/avg/max/stddev") summary formats are understood.
package ping

import (
	"context"
	"fmt"
	"time"

	"github.com/RehakOndrej/internet-monitor/pkg/check"
)

const (
	// TypeName is the registered name for this probe.
	TypeName = "ping"

	// DefaultCount is the number of echo requests per measurement.
	DefaultCount = 4

	// DefaultBinary is looked up on PATH.
	DefaultBinary = "ping"
)

// Ping implements check.Check by running the ping binary.
type Ping struct {
	target string
	count  int
	binary string
	runner *Runner
	now    func() time.Time
}

// New creates a Ping check with the given target and options.
func New(target string, opts ...Option) (*Ping, error) {
	if target == "" {
		return nil, fmt.Errorf("ping: target must not be empty")
	}

	p := &Ping{
		target: target,
		count:  DefaultCount,
		binary: DefaultBinary,
		now:    time.Now,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("ping: %w", err)
		}
	}

	p.runner = NewRunner(p.binary, p.count)
	return p, nil
}

// Option is a functional option for configuring a Ping check.
type Option func(*Ping) error

// WithCount sets the number of echo requests to send.
func WithCount(n int) Option {
	return func(p *Ping) error {
		if n < 1 {
			return fmt.Errorf("count must be at least 1, got %d", n)
		}
		p.count = n
		return nil
	}
}

// WithBinary overrides the ping executable.
func WithBinary(path string) Option {
	return func(p *Ping) error {
		if path == "" {
			return fmt.Errorf("binary must not be empty")
		}
		p.binary = path
		return nil
	}
}

// WithClock sets the time source used for Result timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Ping) error {
		if now == nil {
			return fmt.Errorf("clock must not be nil")
		}
		p.now = now
		return nil
	}
}

// Type returns the probe type name.
func (p *Ping) Type() string {
	return TypeName
}

// Target returns the host being measured.
func (p *Ping) Target() string {
	return p.target
}

// Run executes ping once and returns the parsed average latency.
func (p *Ping) Run(ctx context.Context) check.Result {
	raw, err := p.runner.Run(ctx, p.target)
	if err != nil {
		return check.Failed(p.now(), fmt.Errorf("ping %s: %w", p.target, err))
	}

	avg, err := ParseAverage(raw)
	if err != nil {
		return check.Failed(p.now(), fmt.Errorf("ping %s: %w", p.target, err))
	}

	return check.Measured(p.now(), avg)
}

// Close releases the probe worker.
func (p *Ping) Close() error {
	p.runner.Close()
	return nil
}

// Factory creates a Ping check from a config map.
// Required key: "target" (string).
// Optional keys: "count" (float64 or int), "binary" (string).
func Factory(config map[string]any) (check.Check, error) {
	target, ok := config["target"]
	if !ok {
		return nil, fmt.Errorf("ping: config missing required key 'target'")
	}
	targetStr, ok := target.(string)
	if !ok {
		return nil, fmt.Errorf("ping: 'target' must be a string, got %T", target)
	}

	var opts []Option

	if v, ok := config["count"]; ok {
		switch c := v.(type) {
		case float64:
			opts = append(opts, WithCount(int(c)))
		case int:
			opts = append(opts, WithCount(c))
		default:
			return nil, fmt.Errorf("ping: 'count' must be a number, got %T", v)
		}
	}

	if v, ok := config["binary"]; ok {
		b, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("ping: 'binary' must be a string, got %T", v)
		}
		opts = append(opts, WithBinary(b))
	}

	return New(targetStr, opts...)
}
