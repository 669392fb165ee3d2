// Package commit generates commit messages from staged diffs via a
// completion API and records the result with git.
package commit

import (
	"context"
	"fmt"
	"strings"

	"chore/internal/git"
	"chore/internal/log"
)

const systemPrompt = `You write git commit messages. Summarize the staged diff
in the imperative mood. First line at most 72 characters. If the change needs
explanation, add a blank line and one or more body paragraphs. Reply with the
commit message only, no surrounding quotes or markdown.`

// Completer produces text from a system and user prompt.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Payload is the generated message ready for git, consumed immediately and
// never persisted.
type Payload struct {
	Message    string
	Paragraphs []string
}

// Generate stages all changes, reads the staged diff, and asks the model for
// a commit message. Fails before any API call when nothing is staged.
func Generate(ctx context.Context, c Completer) (*Payload, error) {
	if err := git.StageAll(); err != nil {
		return nil, err
	}

	diff, err := git.StagedDiff()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(diff) == "" {
		return nil, fmt.Errorf("nothing staged to commit")
	}

	prompt, truncated := UserPrompt(diff)
	if truncated {
		log.WithComponent("commit").Debug("diff truncated", "budget", DiffBudget)
	}

	raw, err := c.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate commit message: %w", err)
	}

	paragraphs, err := FormatMessage(raw)
	if err != nil {
		return nil, err
	}

	return &Payload{
		Message:    strings.Join(paragraphs, "\n\n"),
		Paragraphs: paragraphs,
	}, nil
}

// UserPrompt builds the user prompt for a diff, noting truncation so the
// model knows the input is partial.
func UserPrompt(diff string) (string, bool) {
	cut, truncated := TruncateDiff(diff)
	var b strings.Builder
	b.WriteString("Write a commit message for this staged diff")
	if truncated {
		b.WriteString(" (the diff was truncated; describe only what is shown)")
	}
	b.WriteString(":\n\n")
	b.WriteString(cut)
	return b.String(), truncated
}

// Run generates a message and commits with it. Push additionally pushes the
// branch afterwards.
func Run(ctx context.Context, c Completer, push bool) error {
	payload, err := Generate(ctx, c)
	if err != nil {
		return err
	}
	if err := git.Commit(payload.Paragraphs); err != nil {
		return err
	}
	if push {
		return git.Push()
	}
	return nil
}
