package log

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestSetup(t *testing.T) {
	// Reset logger for testing
	logger = nil
	once = *new(sync.Once)

	Setup("DEBUG")
	if logger == nil {
		t.Fatal("Logger should not be nil")
	}
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, nil)
	l := slog.New(h)

	old := logger
	logger = l
	defer func() { logger = old }()

	WithComponent("telemetry").Info("hello")
	if !strings.Contains(buf.String(), "component=telemetry") {
		t.Errorf("expected component field, got %q", buf.String())
	}

	buf.Reset()
	WithCommand("commit").Warn("slow")
	if !strings.Contains(buf.String(), "command=commit") {
		t.Errorf("expected command field, got %q", buf.String())
	}
}
