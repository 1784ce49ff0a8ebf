package raster

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// === Logger level routing ===

func TestSlogLogger_EveryLevelReachesHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), func() {})

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)
	l.Fatalf("fatal %d", 5)

	out := buf.String()
	for _, want := range []string{"debug 1", "info 2", "warn 3", "error 4", "fatal 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogLogger_FatalfInvokesAbort(t *testing.T) {
	var buf bytes.Buffer
	called := false
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)), func() { called = true })

	l.Fatalf("boom")

	if !called {
		t.Fatal("Fatalf did not invoke the abort callback")
	}
}

func TestNewSlogLogger_NilAbortPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Fatalf with a nil abort callback should panic")
		}
	}()

	l := NewSlogLogger(slog.Default(), nil)
	l.Fatalf("boom")
}
