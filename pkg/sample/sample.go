// Package sample defines the single observation the monitor produces on
// every tick and hands to the metrics sink.
package sample

import (
	"time"
)

// MeasurementType tags every sample written by this program.
const MeasurementType = "internet_performance"

// Sample is one timestamped latency observation.
// LatencyMs is nil when the measurement failed; zero is a valid latency
// and is never used to mean "absent".
type Sample struct {
	Time            time.Time
	MeasurementType string
	LatencyMs       *float64
}

// New returns a Sample for a successful measurement.
func New(t time.Time, latencyMs float64) Sample {
	return Sample{
		Time:            t,
		MeasurementType: MeasurementType,
		LatencyMs:       &latencyMs,
	}
}

// Absent returns a Sample whose latency could not be measured.
func Absent(t time.Time) Sample {
	return Sample{
		Time:            t,
		MeasurementType: MeasurementType,
	}
}

// Latency returns the measured latency and whether it is present.
func (s Sample) Latency() (float64, bool) {
	if s.LatencyMs == nil {
		return 0, false
	}
	return *s.LatencyMs, true
}
