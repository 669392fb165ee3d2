package tasks

import (
	"errors"
	"strings"
	"testing"

	"chore/internal/config"
)

func TestRun_ExecutesInOrder(t *testing.T) {
	t.Parallel()

	r := New("build", config.Task{Silent: true, Cmds: []string{"one", "two", "three"}})
	var ran []string
	r.runScript = func(cmdline string) error {
		ran = append(ran, cmdline)
		return nil
	}

	if err := r.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Join(ran, ",") != "one,two,three" {
		t.Errorf("ran %v", ran)
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	r := New("deploy", config.Task{Silent: true, Cmds: []string{"one", "two", "three"}})
	boom := errors.New("exit 1")
	var ran []string
	r.runScript = func(cmdline string) error {
		ran = append(ran, cmdline)
		if cmdline == "two" {
			return boom
		}
		return nil
	}

	err := r.Run()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
	if len(ran) != 2 {
		t.Errorf("ran %v, want to stop after second command", ran)
	}
	if !strings.Contains(err.Error(), "task deploy") || !strings.Contains(err.Error(), `"two"`) {
		t.Errorf("error should name task and command: %v", err)
	}
}

func TestRun_EmptyCmds(t *testing.T) {
	t.Parallel()

	r := New("noop", config.Task{})
	called := false
	r.runScript = func(string) error {
		called = true
		return nil
	}

	err := r.Run()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "noop") {
		t.Errorf("error should name the task: %v", err)
	}
	if called {
		t.Error("no command should run")
	}
}
