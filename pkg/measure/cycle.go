// Package measure turns one probe run into one Sample.
package measure

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/RehakOndrej/internet-monitor/pkg/check"
	"github.com/RehakOndrej/internet-monitor/pkg/check/ping"
	"github.com/RehakOndrej/internet-monitor/pkg/sample"
)

// Cycle runs a latency check and always yields a well-formed Sample.
type Cycle struct {
	check  check.Check
	clock  clockwork.Clock
	logger *logrus.Logger
}

// NewCycle creates a Cycle around chk. A nil clock means the real clock.
func NewCycle(chk check.Check, clock clockwork.Clock, logger *logrus.Logger) *Cycle {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cycle{
		check:  chk,
		clock:  clock,
		logger: logger,
	}
}

// Execute measures latency once. It never fails: any probe or parse error
// is logged as a warning and the Sample is returned with latency absent.
func (c *Cycle) Execute(ctx context.Context) sample.Sample {
	result := c.run(ctx)
	now := c.clock.Now()

	if latency, ok := result.Latency(); ok {
		c.logger.Infof("Latency: %.2f ms", latency)
		return sample.New(now, latency)
	}

	err := result.Err
	if err == nil {
		err = errors.New("check reported no latency")
	}
	entry := c.logger.WithField("probe", c.check.Type())
	var exitErr *ping.ExitError
	if errors.As(err, &exitErr) {
		entry = entry.WithField("stderr", exitErr.Stderr)
	}
	entry.Warnf("Failed to measure latency: %v", err)
	return sample.Absent(now)
}

// run shields the cycle from a check that panics.
func (c *Cycle) run(ctx context.Context) (result check.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = check.Failed(c.clock.Now(), &PanicError{Value: r})
		}
	}()
	return c.check.Run(ctx)
}
