package ping

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakePing writes an executable shell script standing in for the ping binary.
func fakePing(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping: fake ping binary needs /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "ping")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake ping: %v", err)
	}
	return path
}

func TestRunner_Success(t *testing.T) {
	bin := fakePing(t, `echo "args: $@"
echo "rtt min/avg/max/mdev = 10.123/15.456/20.789/2.345 ms"`)

	r := NewRunner(bin, 4)
	defer r.Close()

	out, err := r.Run(context.Background(), "google.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "args: -c 4 google.com") {
		t.Errorf("expected ping to receive '-c 4 google.com', got %q", out)
	}
	if !strings.Contains(out, "15.456") {
		t.Errorf("expected summary in output, got %q", out)
	}
}

func TestRunner_NonZeroExit(t *testing.T) {
	bin := fakePing(t, `echo "ping: unknown host" >&2
exit 2`)

	r := NewRunner(bin, 4)
	defer r.Close()

	_, err := r.Run(context.Background(), "nonexistent.invalid")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T (%v)", err, err)
	}
	if exitErr.Code != 2 {
		t.Errorf("expected exit code 2, got %d", exitErr.Code)
	}
	if exitErr.Stderr != "ping: unknown host" {
		t.Errorf("expected stderr 'ping: unknown host', got %q", exitErr.Stderr)
	}
	if !strings.Contains(err.Error(), "unknown host") {
		t.Errorf("expected error text to carry stderr, got %q", err.Error())
	}
}

func TestRunner_SpawnFailure(t *testing.T) {
	r := NewRunner(filepath.Join(t.TempDir(), "does-not-exist"), 4)
	defer r.Close()

	_, err := r.Run(context.Background(), "google.com")
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("expected *SpawnError, got %T (%v)", err, err)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Error("spawn failure must not be reported as an exit error")
	}
}

func TestRunner_SequentialCalls(t *testing.T) {
	bin := fakePing(t, `echo "round-trip min/avg/max/stddev = 1.0/2.0/3.0/0.5 ms"`)

	r := NewRunner(bin, 4)
	defer r.Close()

	for i := 0; i < 3; i++ {
		if _, err := r.Run(context.Background(), "localhost"); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
}

func TestExitError_NoStderr(t *testing.T) {
	err := &ExitError{Code: 1}
	if err.Error() != "ping exited with status 1" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
