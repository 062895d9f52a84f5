package ping

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/alitto/pond/v2"
)

// SpawnError means the ping process could not be started at all, e.g. the
// binary is missing or not executable.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError means ping ran but exited with a nonzero status.
// Stderr holds whatever the process wrote to standard error.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("ping exited with status %d", e.Code)
	}
	return fmt.Sprintf("ping exited with status %d: %s", e.Code, e.Stderr)
}

// Runner launches the ping binary. Every invocation is executed on a
// dedicated single-worker pool and awaited by the caller, so the calling
// goroutine never runs the blocking subprocess itself and at most one
// ping process exists at a time.
type Runner struct {
	binary string
	count  int
	pool   pond.ResultPool[string]
}

// NewRunner creates a Runner that sends count echo requests per call.
func NewRunner(binary string, count int) *Runner {
	return &Runner{
		binary: binary,
		count:  count,
		pool:   pond.NewResultPool[string](1),
	}
}

// Run pings host and returns the captured standard output.
// The returned error is a *SpawnError or an *ExitError.
func (r *Runner) Run(ctx context.Context, host string) (string, error) {
	task := r.pool.SubmitErr(func() (string, error) {
		return r.exec(ctx, host)
	})
	return task.Wait()
}

// Close stops the worker after any in-flight invocation completes.
func (r *Runner) Close() {
	r.pool.StopAndWait()
}

func (r *Runner) exec(ctx context.Context, host string) (string, error) {
	cmd := exec.CommandContext(ctx, r.binary, "-c", strconv.Itoa(r.count), host)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), &ExitError{
			Code:   exitErr.ExitCode(),
			Stderr: strings.TrimSpace(stderr.String()),
		}
	}
	return "", &SpawnError{Binary: r.binary, Err: err}
}
