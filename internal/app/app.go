// Package app assembles the configuration, identity, telemetry and command
// registry into a runnable CLI.
package app

import (
	"fmt"
	"os"

	"chore/internal/command"
	"chore/internal/config"
	"chore/internal/log"
	"chore/internal/telemetry"
)

// App is the fully wired tool.
type App struct {
	Config   *config.Config
	Identity Identity
	Registry *command.Registry
}

// New loads configuration from the working directory upward, resolves the
// identity and registers builtins followed by config tasks. Builtins are
// registered first, so a task cannot shadow one.
func New(argv0, buildVersion string) (*App, error) {
	log.Setup(os.Getenv("CHORE_LOG_LEVEL"))

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("working directory: %w", err)
	}

	cfg, cfgPath, err := config.Discover(wd)
	if err != nil {
		return nil, err
	}
	if cfgPath != "" {
		log.WithComponent("app").Debug("config loaded", "path", cfgPath)
	}

	ident := ResolveIdentity(argv0, cfg.App, buildVersion)
	tel := telemetry.New(ident.Name, ident.Version)
	reg := command.New(
		command.Meta{Name: ident.Name, Summary: ident.Summary, Version: ident.Version},
		tel,
	)

	a := &App{Config: cfg, Identity: ident, Registry: reg}
	a.registerBuiltins()
	a.registerTasks()
	return a, nil
}

// Run dispatches args and returns the process exit code.
func (a *App) Run(args []string) int {
	return a.Registry.Dispatch(args)
}

func (a *App) registerTasks() {
	for _, name := range a.Config.TaskOrder {
		task := a.Config.Tasks[name]
		desc := task.Desc
		if desc == "" {
			desc = "run the " + name + " task"
		}
		a.Registry.Register(name, desc, taskHandler(name, task))
	}
}
