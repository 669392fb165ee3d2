// Package tasks turns config-defined command lists into runnable handlers.
package tasks

import (
	"fmt"
	"os"

	"chore/internal/config"
	"chore/internal/shell"
)

// Runner executes one configured task.
type Runner struct {
	Name string
	Task config.Task

	// runScript is swapped in tests.
	runScript func(string) error
}

// New builds a runner for a named task.
func New(name string, task config.Task) *Runner {
	return &Runner{Name: name, Task: task, runScript: shell.RunScript}
}

// Run executes the task's commands sequentially, stopping at the first
// failure. A task with no commands fails immediately and runs nothing.
func (r *Runner) Run() error {
	if len(r.Task.Cmds) == 0 {
		return fmt.Errorf("task %s has no cmds", r.Name)
	}
	for i, cmdline := range r.Task.Cmds {
		if !r.Task.Silent {
			fmt.Fprintf(os.Stderr, "$ %s\n", cmdline)
		}
		if err := r.runScript(cmdline); err != nil {
			return fmt.Errorf("task %s: command %d (%q): %w", r.Name, i+1, cmdline, err)
		}
	}
	return nil
}
