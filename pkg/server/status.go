package server

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/RehakOndrej/internet-monitor/pkg/scheduler"
)

// Status tracks the latest completed tick.
// It is written by the scheduler goroutine and read by HTTP handlers.
type Status struct {
	mu       sync.RWMutex
	last     scheduler.Tick
	observed bool
	updated  time.Time
	clock    clockwork.Clock
}

// NewStatus creates a Status with no tick recorded. clock stamps each
// update; nil means the real clock.
func NewStatus(clock clockwork.Clock) *Status {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Status{clock: clock}
}

// Observe implements scheduler.Observer.
func (s *Status) Observe(t scheduler.Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = t
	s.observed = true
	s.updated = s.clock.Now()
}

// Snapshot returns a copy of the latest tick and whether there is one.
func (s *Status) Snapshot() (StatusSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.observed {
		return StatusSnapshot{}, false
	}

	snap := StatusSnapshot{
		Iteration:       s.last.Iteration,
		Time:            s.last.Sample.Time,
		MeasurementType: s.last.Sample.MeasurementType,
		Written:         s.last.WriteErr == nil,
		Updated:         s.updated,
	}
	if latency, ok := s.last.Sample.Latency(); ok {
		snap.LatencyMs = &latency
	}
	if s.last.WriteErr != nil {
		snap.WriteError = s.last.WriteErr.Error()
	}
	return snap, true
}

// StatusSnapshot is the JSON shape served on /api.
type StatusSnapshot struct {
	Iteration       uint64    `json:"iteration"`
	Time            time.Time `json:"time"`
	MeasurementType string    `json:"measurement_type"`
	LatencyMs       *float64  `json:"latency_ms"`
	Written         bool      `json:"written"`
	WriteError      string    `json:"write_error,omitempty"`
	Updated         time.Time `json:"updated"`
}
