// Package shell runs external commands on behalf of chore. One child runs at
// a time; the caller blocks until it exits.
package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"chore/internal/log"
)

const (
	// maxCaptureBytes caps buffered stdout from captured commands.
	maxCaptureBytes = 1 << 20

	// maxStderrBytes caps the amount of stderr captured from failed commands.
	maxStderrBytes = 64 * 1024
)

// ExitError describes a child process that exited non-zero.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Name, e.Code, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// Run executes a command with inherited stdio. Used for interactive work
// (git commit output, bun, task commands) where streaming matters.
func Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.WithComponent("shell").Debug("run", "name", name, "args", args)

	if err := cmd.Run(); err != nil {
		return wrapExit(name, err, "")
	}
	return nil
}

// Capture executes a command and returns its stdout. Output is buffered in
// memory up to maxCaptureBytes; beyond that the capture fails instead of
// growing without bound. Excess output is still drained so the child never
// blocks on a full pipe.
func Capture(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &limitWriter{w: &stderr, limit: maxStderrBytes}

	var stdout bytes.Buffer
	out := &limitWriter{w: &stdout, limit: maxCaptureBytes}
	cmd.Stdout = out

	log.WithComponent("shell").Debug("capture", "name", name, "args", args)

	err := cmd.Run()
	if out.overflowed() {
		return "", fmt.Errorf("%s: output exceeds %d byte capture limit", name, maxCaptureBytes)
	}
	if err != nil {
		return "", wrapExit(name, err, stderr.String())
	}
	return stdout.String(), nil
}

// RunScript executes a shell command line with inherited stdio. Tasks from
// the config file go through here so pipes and globs behave as users expect.
func RunScript(cmdline string) error {
	sh, flag := systemShell()
	cmd := exec.Command(sh, flag, cmdline)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.WithComponent("shell").Debug("run script", "cmdline", cmdline)

	if err := cmd.Run(); err != nil {
		return wrapExit(fmt.Sprintf("%q", cmdline), err, "")
	}
	return nil
}

// StartDetached launches a command without waiting for it. Used for handing
// a file to a desktop application.
func StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	// Reap the child when it eventually exits.
	go func() { _ = cmd.Wait() }()
	return nil
}

func systemShell() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/c"
	}
	return "sh", "-c"
}

func wrapExit(name string, err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Name: name, Code: exitErr.ExitCode(), Stderr: stderr}
	}
	return fmt.Errorf("run %s: %w", name, err)
}

// limitWriter buffers up to limit bytes and discards the rest while still
// accepting every write, so a child process always has a live write target
// and never blocks on a full pipe. seen counts all bytes offered, including
// discarded ones.
type limitWriter struct {
	w     io.Writer
	limit int
	n     int
	seen  int
}

// overflowed reports whether more than limit bytes were written.
func (lw *limitWriter) overflowed() bool {
	return lw.seen > lw.limit
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	lw.seen += len(p)
	if lw.n >= lw.limit {
		return len(p), nil
	}
	remain := lw.limit - lw.n
	if len(p) > remain {
		if _, err := lw.w.Write(p[:remain]); err != nil {
			return 0, err
		}
		lw.n = lw.limit
		return len(p), nil
	}
	n, err := lw.w.Write(p)
	lw.n += n
	return n, err
}
