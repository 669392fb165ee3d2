// Package secrets validates declared environment secrets for the setup flow.
package secrets

import (
	"fmt"
	"os"
	"strings"

	"chore/internal/config"
)

// Status classifies one secret check.
type Status string

const (
	// StatusSet means the environment variable has a non-empty value.
	StatusSet Status = "set"
	// StatusDefault means a required variable is unset but a default exists.
	StatusDefault Status = "default"
	// StatusMissing means a required variable is unset with no default.
	StatusMissing Status = "missing"
	// StatusOptional means an optional variable is unset.
	StatusOptional Status = "optional"
)

// Entry is the outcome for a single secret.
type Entry struct {
	Name   string
	Label  string
	Status Status
}

// Report holds the outcome of a validation run. Missing collects every
// required secret without a value or default, so failures list all of them
// together rather than stopping at the first.
type Report struct {
	Entries []Entry
	Missing []string
}

// OK reports whether validation passed.
func (r *Report) OK() bool {
	return len(r.Missing) == 0
}

// Check validates every declared secret against the current environment.
// The environment is read on each call: secrets change between runs and are
// never cached.
func Check(declared map[string]config.Secret, order []string) *Report {
	r := &Report{}
	for _, name := range order {
		secret, ok := declared[name]
		if !ok {
			continue
		}
		entry := Entry{Name: name, Label: secret.DisplayLabel(name)}

		switch {
		case strings.TrimSpace(os.Getenv(name)) != "":
			entry.Status = StatusSet
		case secret.Required && secret.Default != "":
			entry.Status = StatusDefault
		case secret.Required:
			entry.Status = StatusMissing
			r.Missing = append(r.Missing, name)
		default:
			entry.Status = StatusOptional
		}
		r.Entries = append(r.Entries, entry)
	}
	return r
}

// FormatHuman returns a human-readable validation report.
func FormatHuman(r *Report) string {
	var b strings.Builder

	for _, e := range r.Entries {
		switch e.Status {
		case StatusSet:
			fmt.Fprintf(&b, "  OK    %s (%s)\n", e.Name, e.Label)
		case StatusDefault:
			fmt.Fprintf(&b, "  WARN  %s (%s): not set, default will be used\n", e.Name, e.Label)
		case StatusMissing:
			fmt.Fprintf(&b, "  MISS  %s (%s): required but not set\n", e.Name, e.Label)
		case StatusOptional:
			fmt.Fprintf(&b, "  --    %s (%s): not set, optional\n", e.Name, e.Label)
		}
	}

	if len(r.Missing) > 0 {
		fmt.Fprintf(&b, "Missing required secrets: %s\n", strings.Join(r.Missing, ", "))
	} else if len(r.Entries) > 0 {
		b.WriteString("All required secrets are available.\n")
	} else {
		b.WriteString("No secrets declared.\n")
	}

	return b.String()
}
