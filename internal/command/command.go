// Package command holds the registry and dispatch loop behind the CLI.
package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"chore/internal/log"
	"chore/internal/picker"
	"chore/internal/telemetry"
)

// Handler runs a command. A nil error is exit 0.
type Handler func() error

// Entry is one row of the catalog, in registration order.
type Entry struct {
	Name        string
	Description string
}

// Meta is the header printed above the catalog in root help.
type Meta struct {
	Name    string
	Summary string
	Version string
}

// Registry maps command names to handlers. Registration order is preserved
// for help output and the palette; the first registration of a name wins.
type Registry struct {
	meta     Meta
	tel      *telemetry.Client
	entries  []Entry
	handlers map[string]Handler

	stdout io.Writer
	stderr io.Writer

	// replaced in tests
	interactive func() bool
	pick        func([]picker.Entry) (string, error)
}

func New(meta Meta, tel *telemetry.Client) *Registry {
	return &Registry{
		meta:        meta,
		tel:         tel,
		handlers:    make(map[string]Handler),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: picker.Interactive,
		pick:        picker.Pick,
	}
}

// Register adds a command. Later registrations of the same name are ignored,
// so builtins registered first cannot be shadowed by config tasks. The
// handler is wrapped with telemetry here, once.
func (r *Registry) Register(name, desc string, h Handler) {
	if _, ok := r.handlers[name]; ok {
		return
	}
	r.entries = append(r.entries, Entry{Name: name, Description: desc})
	r.handlers[name] = r.tel.Instrument(name, h)
}

// Catalog returns the registered commands in registration order.
func (r *Registry) Catalog() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Dispatch routes args to a handler and returns the process exit code.
func (r *Registry) Dispatch(args []string) int {
	if len(args) == 0 {
		return r.dispatchEmpty()
	}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "--help", "-h":
		r.printRootHelp(r.stdout)
		return 0
	case "--version":
		fmt.Fprintf(r.stdout, "%s %s\n", r.meta.Name, r.meta.Version)
		return 0
	case "help":
		return r.runHelp(rest)
	}

	h, ok := r.handlers[cmd]
	if !ok {
		r.tel.Track("command_not_found", map[string]any{"command": cmd})
		fmt.Fprintf(r.stderr, "Unknown command: %s\n\n", cmd)
		r.printRootHelp(r.stderr)
		return 1
	}

	if hasHelpFlag(rest) {
		r.printCommandHelp(cmd)
		return 0
	}

	log.WithCommand(cmd).Debug("dispatching")
	if err := h(); err != nil {
		fmt.Fprintf(r.stderr, "%s: %v\n", cmd, err)
		return 1
	}
	return 0
}

// dispatchEmpty handles a bare invocation. In an interactive session the
// palette runs and the selection is dispatched; anywhere else, or when fzf
// is missing, root help is printed instead.
func (r *Registry) dispatchEmpty() int {
	if !r.interactive() {
		r.printRootHelp(r.stdout)
		return 0
	}

	rows := make([]picker.Entry, len(r.entries))
	for i, e := range r.entries {
		rows[i] = picker.Entry{Name: e.Name, Desc: e.Description}
	}

	name, err := r.pick(rows)
	if err != nil {
		var cancelled *picker.CancelledError
		if errors.As(err, &cancelled) && cancelled.Code != 0 {
			return cancelled.Code
		}
		r.printRootHelp(r.stdout)
		return 0
	}
	return r.Dispatch([]string{name})
}

func (r *Registry) runHelp(args []string) int {
	if len(args) == 0 {
		r.printRootHelp(r.stdout)
		return 0
	}
	topic := args[0]
	if _, ok := r.handlers[topic]; !ok {
		fmt.Fprintf(r.stderr, "Unknown help topic: %s\n", topic)
		return 1
	}
	r.printCommandHelp(topic)
	return 0
}

func (r *Registry) printCommandHelp(name string) {
	for _, e := range r.entries {
		if e.Name == name {
			fmt.Fprintf(r.stdout, "%s - %s\n\nUsage: %s %s\n", e.Name, e.Description, r.meta.Name, e.Name)
			return
		}
	}
}

func (r *Registry) printRootHelp(w io.Writer) {
	fmt.Fprintf(w, "%s %s - %s\n\n", r.meta.Name, r.meta.Version, r.meta.Summary)
	fmt.Fprintf(w, "Usage: %s <command>\n\nCommands:\n", r.meta.Name)

	width := 0
	for _, e := range r.entries {
		if len(e.Name) > width {
			width = len(e.Name)
		}
	}
	for _, e := range r.entries {
		fmt.Fprintf(w, "  %-*s  %s\n", width, e.Name, e.Description)
	}
}

func hasHelpFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "--help", "-h":
			return true
		}
	}
	return false
}
