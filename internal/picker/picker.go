// Package picker presents an interactive command palette backed by fzf.
package picker

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// Entry is one selectable row: a name plus a short description.
type Entry struct {
	Name string
	Desc string
}

// ErrNoSelection means fzf exited cleanly without printing a choice.
var ErrNoSelection = errors.New("no selection made")

// ErrUnavailable means fzf is not installed or not on PATH.
var ErrUnavailable = errors.New("fzf not found in PATH")

// CancelledError reports that the user dismissed the palette (Esc or
// Ctrl+C). Code carries fzf's exit status.
type CancelledError struct {
	Code int
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("selection cancelled (fzf exited %d)", e.Code)
}

// Interactive reports whether both stdin and stdout are terminals. The
// palette is only offered in a real interactive session; pipes and CI get
// plain help output instead.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Pick shows entries in fzf and returns the name of the chosen one. Rows
// are fed as tab-separated name/description pairs; only the name column is
// returned. The caller decides what cancellation and no-selection mean.
func Pick(entries []Entry) (string, error) {
	path, err := exec.LookPath("fzf")
	if err != nil {
		return "", ErrUnavailable
	}

	var input strings.Builder
	for _, e := range entries {
		input.WriteString(e.Name)
		input.WriteByte('\t')
		input.WriteString(e.Desc)
		input.WriteByte('\n')
	}

	cmd := exec.Command(path,
		"--height=40%",
		"--reverse",
		"--delimiter=\t",
		"--with-nth=1,2",
	)
	cmd.Stdin = strings.NewReader(input.String())
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &CancelledError{Code: exitErr.ExitCode()}
		}
		return "", fmt.Errorf("run fzf: %w", err)
	}

	line := strings.TrimSpace(out.String())
	if line == "" {
		return "", ErrNoSelection
	}
	if i := strings.IndexByte(line, '\t'); i >= 0 {
		line = line[:i]
	}
	return line, nil
}
