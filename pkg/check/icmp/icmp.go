// Package icmp implements a latency probe that sends ICMP echo requests
// in-process instead of running the ping binary.
package icmp

import (
	"context"
	"errors"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/RehakOndrej/internet-monitor/pkg/check"
)

const (
	// TypeName is the registered name for this probe.
	TypeName = "icmp"

	// DefaultCount matches the ping probe.
	DefaultCount = 4

	// DefaultTimeout bounds a whole run of DefaultCount requests.
	DefaultTimeout = 10 * time.Second
)

// ErrNoReplies is returned when every echo request was lost.
var ErrNoReplies = errors.New("no echo replies received")

// Check implements check.Check using pro-bing.
type Check struct {
	target     string
	count      int
	timeout    time.Duration
	privileged bool
}

// Option is a functional option for configuring an ICMP Check.
type Option func(*Check) error

// WithCount sets the number of echo requests to send.
func WithCount(n int) Option {
	return func(c *Check) error {
		if n < 1 {
			return fmt.Errorf("count must be at least 1, got %d", n)
		}
		c.count = n
		return nil
	}
}

// WithTimeout bounds the whole run.
func WithTimeout(d time.Duration) Option {
	return func(c *Check) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		c.timeout = d
		return nil
	}
}

// WithPrivileged switches from unprivileged UDP echo to raw ICMP sockets.
func WithPrivileged(privileged bool) Option {
	return func(c *Check) error {
		c.privileged = privileged
		return nil
	}
}

// New creates an ICMP Check for target.
func New(target string, opts ...Option) (*Check, error) {
	if target == "" {
		return nil, fmt.Errorf("icmp: target must not be empty")
	}

	c := &Check{
		target:  target,
		count:   DefaultCount,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("icmp: %w", err)
		}
	}
	return c, nil
}

// Type returns the probe type name.
func (c *Check) Type() string {
	return TypeName
}

// Run sends the configured number of echo requests and reports the
// average round-trip time.
func (c *Check) Run(ctx context.Context) check.Result {
	pinger, err := probing.NewPinger(c.target)
	if err != nil {
		return check.Failed(time.Now(), fmt.Errorf("icmp %s: %w", c.target, err))
	}
	defer pinger.Stop()

	pinger.SetPrivileged(c.privileged)
	pinger.Count = c.count
	pinger.Timeout = c.timeout

	if err := pinger.RunWithContext(ctx); err != nil {
		return check.Failed(time.Now(), fmt.Errorf("icmp %s: %w", c.target, err))
	}

	avg, err := averageMs(pinger.Statistics())
	if err != nil {
		return check.Failed(time.Now(), fmt.Errorf("icmp %s: %w", c.target, err))
	}
	return check.Measured(time.Now(), avg)
}

// averageMs converts run statistics to an average latency in milliseconds.
func averageMs(stats *probing.Statistics) (float64, error) {
	if stats == nil || stats.PacketsRecv == 0 {
		return 0, ErrNoReplies
	}
	return float64(stats.AvgRtt) / float64(time.Millisecond), nil
}

// Factory creates an ICMP Check from a config map.
// Required key: "target" (string).
// Optional keys: "count" (number), "timeout" (duration string), "privileged" (bool).
func Factory(config map[string]any) (check.Check, error) {
	target, ok := config["target"].(string)
	if !ok {
		return nil, fmt.Errorf("icmp: config requires string key 'target'")
	}

	var opts []Option

	if v, ok := config["count"]; ok {
		switch n := v.(type) {
		case float64:
			opts = append(opts, WithCount(int(n)))
		case int:
			opts = append(opts, WithCount(n))
		default:
			return nil, fmt.Errorf("icmp: 'count' must be a number, got %T", v)
		}
	}

	if v, ok := config["timeout"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("icmp: 'timeout' must be a duration string, got %T", v)
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("icmp: invalid timeout %q: %w", s, err)
		}
		opts = append(opts, WithTimeout(d))
	}

	if v, ok := config["privileged"]; ok {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("icmp: 'privileged' must be a bool, got %T", v)
		}
		opts = append(opts, WithPrivileged(b))
	}

	return New(target, opts...)
}
