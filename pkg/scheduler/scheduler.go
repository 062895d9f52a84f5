// Package scheduler drives the measurement loop: measure, write, sleep,
// repeat, for as long as the process runs.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/RehakOndrej/internet-monitor/pkg/sample"
	"github.com/RehakOndrej/internet-monitor/pkg/sink"
)

// Measurer produces one sample per call and never fails.
type Measurer interface {
	Execute(ctx context.Context) sample.Sample
}

// Tick describes one completed iteration.
type Tick struct {
	Iteration uint64
	Sample    sample.Sample
	WriteErr  error
}

// Observer is notified after every tick, e.g. to expose the latest sample.
type Observer interface {
	Observe(t Tick)
}

type Config struct {
	Logger   *logrus.Logger
	Clock    clockwork.Clock
	Measurer Measurer
	Sink     sink.Sink
	Interval time.Duration

	// Optional.
	Metrics  *Metrics
	Observer Observer
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Clock == nil {
		return errors.New("clock is required")
	}
	if c.Measurer == nil {
		return errors.New("measurer is required")
	}
	if c.Sink == nil {
		return errors.New("sink is required")
	}
	if c.Interval <= 0 {
		return errors.New("interval must be greater than 0")
	}
	return nil
}

// Scheduler runs ticks one after another. The interval is slept after a
// tick completes, so the period is the interval plus however long the tick
// took.
type Scheduler struct {
	cfg       *Config
	log       *logrus.Logger
	iteration uint64
}

func New(cfg *Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		cfg: cfg,
		log: cfg.Logger,
	}, nil
}

// Run checks the sink once and then ticks until ctx is cancelled.
// A tick in progress when ctx is cancelled is allowed to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Infof("Starting internet-monitor with interval of %v", s.cfg.Interval)

	if err := s.cfg.Sink.Ping(ctx); err != nil {
		s.log.Warnf("Could not ping InfluxDB, but will try to write anyway: %v", err)
	} else {
		s.log.Info("Successfully connected to InfluxDB")
	}

	for {
		t := s.tick(ctx)
		s.log.Infof("Completed measurement iteration %d. Sleeping for %v...", t.Iteration, s.cfg.Interval)

		select {
		case <-ctx.Done():
			s.log.Infof("Stopping after iteration %d", t.Iteration)
			return ctx.Err()
		case <-s.cfg.Clock.After(s.cfg.Interval):
		}

		s.log.Debugf("Woke up from sleep after iteration %d", t.Iteration)
	}
}

// tick runs one iteration. Nothing it calls can stop the loop.
func (s *Scheduler) tick(ctx context.Context) Tick {
	s.iteration++
	log := s.log.WithField("iteration", s.iteration)
	log.Infof("Starting measurement iteration %d", s.iteration)

	smp := s.cfg.Measurer.Execute(ctx)

	err := s.cfg.Sink.Write(ctx, smp)
	if err != nil {
		log.Errorf("Failed to write metrics to InfluxDB: %v", err)
	} else {
		log.Info("Successfully wrote metrics to InfluxDB")
	}

	t := Tick{Iteration: s.iteration, Sample: smp, WriteErr: err}
	s.record(t)
	if s.cfg.Observer != nil {
		s.cfg.Observer.Observe(t)
	}
	return t
}

func (s *Scheduler) record(t Tick) {
	m := s.cfg.Metrics
	if m == nil {
		return
	}
	m.Ticks.Inc()
	if latency, ok := t.Sample.Latency(); ok {
		m.Latency.Set(latency)
	} else {
		m.MeasurementFailures.Inc()
	}
	if t.WriteErr != nil {
		m.SinkWriteFailures.Inc()
	}
}

// Iteration returns the number of ticks started so far.
// It must only be called from the goroutine running Run, or after Run returns.
func (s *Scheduler) Iteration() uint64 {
	return s.iteration
}
