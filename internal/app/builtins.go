package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"chore/internal/command"
	"chore/internal/commit"
	"chore/internal/config"
	"chore/internal/db"
	"chore/internal/llm"
	"chore/internal/secrets"
	"chore/internal/shell"
	"chore/internal/tasks"
	"chore/internal/ui/chat"
)

func (a *App) registerBuiltins() {
	r := a.Registry
	r.Register("commit", "stage everything and commit with a generated message", a.commitHandler(false))
	r.Register("commitPush", "commit with a generated message, then push", a.commitHandler(true))
	r.Register("dbOpen", "open the dev database in a viewer", dbOpenHandler)
	r.Register("dbClear", "delete all rows from the dev database", dbClearHandler)
	r.Register("update", "update dependencies with bun", func() error {
		return shell.Run("bun", "update")
	})
	r.Register("setup", "check required secrets are set", a.setupHandler)
	r.Register("tasks", "list tasks defined in "+config.FileName, a.tasksHandler)
	r.Register("test", "run the test suite with bun", func() error {
		return shell.Run("bun", "test")
	})
	r.Register("chat", "chat with the model in the terminal", chatHandler)
	r.Register("version", "print the version", func() error {
		fmt.Printf("%s %s\n", a.Identity.Name, a.Identity.Version)
		return nil
	})
}

func (a *App) commitHandler(push bool) command.Handler {
	return func() error {
		client, err := llm.NewFromEnv()
		if err != nil {
			return err
		}
		return commit.Run(context.Background(), client, push)
	}
}

func dbOpenHandler() error {
	path, err := locateDB()
	if err != nil {
		return err
	}
	return db.OpenViewer(path)
}

func dbClearHandler() error {
	path, err := locateDB()
	if err != nil {
		return err
	}
	ctx := context.Background()
	tables, err := db.Tables(ctx, path)
	if err != nil {
		return err
	}
	if err := db.Clear(ctx, path); err != nil {
		return err
	}
	fmt.Printf("Cleared %d tables in %s\n", len(tables), path)
	return nil
}

func locateDB() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	return db.Locate(wd)
}

func (a *App) setupHandler() error {
	report := secrets.Check(a.Config.Secrets, a.Config.SecretOrder)
	fmt.Print(secrets.FormatHuman(report))
	if !report.OK() {
		return errors.New("missing required secrets")
	}
	return nil
}

func (a *App) tasksHandler() error {
	if len(a.Config.TaskOrder) == 0 {
		fmt.Printf("No tasks defined. Add a [tasks.<name>] table to %s.\n", config.FileName)
		return nil
	}
	for _, name := range a.Config.TaskOrder {
		task := a.Config.Tasks[name]
		if task.Desc != "" {
			fmt.Printf("%s - %s\n", name, task.Desc)
		} else {
			fmt.Println(name)
		}
	}
	return nil
}

func chatHandler() error {
	client, err := llm.NewFromEnv()
	if err != nil {
		return err
	}
	return chat.Run(context.Background(), client)
}

func taskHandler(name string, task config.Task) command.Handler {
	return func() error {
		return tasks.New(name, task).Run()
	}
}
