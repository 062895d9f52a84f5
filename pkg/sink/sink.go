// Package sink persists samples to a time-series store.
package sink

import (
	"context"
	"fmt"

	"github.com/RehakOndrej/internet-monitor/pkg/sample"
)

// Sink accepts one sample per tick.
type Sink interface {
	// Ping checks that the store is reachable. Used once at startup.
	Ping(ctx context.Context) error

	// Write stores one sample. A failure is returned, never retried.
	Write(ctx context.Context, s sample.Sample) error

	// Close releases the underlying client.
	Close()
}

// ConnectError means the connectivity check against the store failed.
type ConnectError struct {
	URL string
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not reach %s: %v", e.URL, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// WriteError means a sample was rejected or could not be delivered.
type WriteError struct {
	Measurement string
	Err         error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s point: %v", e.Measurement, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
