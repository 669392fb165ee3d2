// Package git shells out to the git binary for the handful of operations the
// commit flow needs.
package git

import (
	"fmt"

	"chore/internal/shell"
)

// StageAll stages every change in the working tree.
func StageAll() error {
	if err := shell.Run("git", "add", "-A"); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}
	return nil
}

// StagedDiff returns the diff of staged changes.
func StagedDiff() (string, error) {
	out, err := shell.Capture("git", "diff", "--cached")
	if err != nil {
		return "", fmt.Errorf("read staged diff: %w", err)
	}
	return out, nil
}

// Commit records a commit with one -m flag per paragraph, which is how
// multi-paragraph messages are passed without opening an editor.
func Commit(paragraphs []string) error {
	if len(paragraphs) == 0 {
		return fmt.Errorf("commit: no message paragraphs")
	}
	return shell.Run("git", CommitArgs(paragraphs)...)
}

// Push pushes the current branch.
func Push() error {
	return shell.Run("git", "push")
}

// CommitArgs returns the argv for Commit without running it. Split out so
// the argument construction is testable.
func CommitArgs(paragraphs []string) []string {
	args := []string{"commit"}
	for _, p := range paragraphs {
		args = append(args, "-m", p)
	}
	return args
}
