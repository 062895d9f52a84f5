package check

import (
	"time"
)

// Result captures the outcome of a single check execution.
type Result struct {
	// Timestamp is when the check finished.
	Timestamp time.Time

	// Success indicates whether a latency was measured.
	Success bool

	// Metrics holds named measurements, e.g. {"latency_ms": 15.456}.
	// Nil when the check failed.
	Metrics map[string]float64

	// Err holds the reason the check failed. Nil when Success is true.
	Err error
}

// Latency returns the average latency in milliseconds, if the check
// succeeded and reported one.
func (r Result) Latency() (float64, bool) {
	if !r.Success || r.Metrics == nil {
		return 0, false
	}
	v, ok := r.Metrics[MetricLatencyMs]
	return v, ok
}

// Failed returns a Result for a failed check finished at t.
func Failed(t time.Time, err error) Result {
	return Result{
		Timestamp: t,
		Err:       err,
	}
}

// Measured returns a successful Result carrying the latency in milliseconds.
func Measured(t time.Time, latencyMs float64) Result {
	return Result{
		Timestamp: t,
		Success:   true,
		Metrics:   map[string]float64{MetricLatencyMs: latencyMs},
	}
}
