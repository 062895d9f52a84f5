// Package check defines how a latency probe is run and how its outcome is
// reported.
//
// A Check measures round-trip latency to one target. Implementations differ
// in how they do it: the ping check shells out to the system ping binary and
// parses its summary, the icmp check sends echo requests in-process. Both
// report the same Result shape so the measurement cycle does not care which
// one is configured.
//
// The Registry maps probe names from configuration to factories.
package check

import (
	"context"
)

// MetricLatencyMs is the Result.Metrics key holding the average round-trip
// time in milliseconds.
const MetricLatencyMs = "latency_ms"

// Check is the interface that all latency probes implement.
type Check interface {
	// Type returns the registered name of this probe (e.g. "ping", "icmp").
	Type() string

	// Run performs one measurement. Failures are reported in Result.Err,
	// never by panicking.
	Run(ctx context.Context) Result
}
