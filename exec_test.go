package docbatch

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping on windows: tests use unix commands")
	}
	t.Parallel()

	runner := &ExecRunner{}

	t.Run("captures stdout", func(t *testing.T) {
		t.Parallel()

		stdout, stderr, err := runner.Run(context.Background(), "echo", "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(stdout) != "hello" {
			t.Errorf("stdout = %q, want %q", stdout, "hello")
		}
		if stderr != "" {
			t.Errorf("stderr = %q, want empty", stderr)
		}
	})

	t.Run("captures stderr", func(t *testing.T) {
		t.Parallel()

		stdout, stderr, err := runner.Run(context.Background(), "sh", "-c", "echo oops >&2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "" {
			t.Errorf("stdout = %q, want empty", stdout)
		}
		if !strings.Contains(stderr, "oops") {
			t.Errorf("stderr = %q, want to contain %q", stderr, "oops")
		}
	})

	t.Run("non-zero exit is not a timeout", func(t *testing.T) {
		t.Parallel()

		_, _, err := runner.Run(context.Background(), "false")
		if err == nil {
			t.Fatal("expected error for non-zero exit")
		}
		if errors.Is(err, ErrConversionTimeout) {
			t.Errorf("error = %v, want plain exit error", err)
		}
	})

	t.Run("deadline expiry reports timeout", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		_, _, err := runner.Run(ctx, "sleep", "2")
		if !errors.Is(err, ErrConversionTimeout) {
			t.Fatalf("error = %v, want %v", err, ErrConversionTimeout)
		}
	})
}
