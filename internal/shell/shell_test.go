package shell

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestCapture_Stdout(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	out, err := Capture("sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if out != "hello" {
		t.Errorf("got %q", out)
	}
}

func TestCapture_NonZeroExit(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	_, err := Capture("sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("expected error")
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T: %v", err, err)
	}
	if exitErr.Code != 3 {
		t.Errorf("exit code = %d, want 3", exitErr.Code)
	}
	if !strings.Contains(exitErr.Error(), "broken") {
		t.Errorf("stderr missing from error: %v", exitErr)
	}
}

func TestCapture_AtLimitSucceeds(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	out, err := Capture("sh", "-c", fmt.Sprintf("head -c %d /dev/zero", maxCaptureBytes))
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if len(out) != maxCaptureBytes {
		t.Errorf("captured %d bytes, want %d", len(out), maxCaptureBytes)
	}
}

func TestCapture_OverLimitFailsPromptly(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	// Triple the cap: the child must be drained past the limit and reaped,
	// not left blocked on a full pipe.
	done := make(chan error, 1)
	go func() {
		_, err := Capture("sh", "-c", fmt.Sprintf("head -c %d /dev/zero", 3*maxCaptureBytes))
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected over-limit error")
		}
		if !strings.Contains(err.Error(), "capture limit") {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Capture did not return: child blocked on over-limit output")
	}
}

func TestCapture_MissingBinary(t *testing.T) {
	t.Parallel()
	_, err := Capture("definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("expected error")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Error("missing binary should not be an ExitError")
	}
}

func TestRunScript_FailurePropagates(t *testing.T) {
	skipOnWindows(t)

	err := RunScript("exit 7")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 7 {
		t.Errorf("exit code = %d, want 7", exitErr.Code)
	}
}

func TestLimitWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lw := &limitWriter{w: &buf, limit: 5}

	n, err := lw.Write([]byte("abcdefgh"))
	if err != nil || n != 8 {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	// Writes past the limit are accepted but discarded.
	if _, err := lw.Write([]byte("more")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if buf.String() != "abcde" {
		t.Errorf("buffered %q, want %q", buf.String(), "abcde")
	}
	if !lw.overflowed() {
		t.Error("overflowed() = false after writes past the limit")
	}
}

func TestLimitWriter_AtLimitIsNotOverflow(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lw := &limitWriter{w: &buf, limit: 5}
	if _, err := lw.Write([]byte("abcde")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if lw.overflowed() {
		t.Error("overflowed() = true for output exactly at the limit")
	}
}
