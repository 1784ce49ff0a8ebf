package raster

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Logger is the host-supplied error/diagnostic sink the core logs
// through (§6, §7): FATAL, ERROR, WARN, INFO, DEBUG. No exception or
// panic escapes the core on its own account — Fatalf logs and then
// invokes the abort callback, which a caller may replace to do
// something other than panic (e.g. abandon just the current draw).
type Logger interface {
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// slogLogger adapts log/slog to the Logger interface, the way the
// teacher's logger.go wraps an *os.File behind a narrower Log method.
// FATAL has no slog equivalent, so it logs one level above ERROR and
// then calls abort.
type slogLogger struct {
	l     *slog.Logger
	abort func()
}

// NewSlogLogger builds a Logger backed by l. If abort is nil, Fatalf
// panics after logging, matching §7's "log at FATAL and abort the
// draw" without the core ever calling os.Exit directly.
func NewSlogLogger(l *slog.Logger, abort func()) Logger {
	if l == nil {
		l = slog.Default()
	}
	if abort == nil {
		abort = func() { panic("raster: fatal error, see log") }
	}
	return &slogLogger{l: l, abort: abort}
}

const levelFatal = slog.Level(12) // one step above slog.LevelError (8)

func (s *slogLogger) Fatalf(format string, args ...any) {
	s.l.Log(context.Background(), levelFatal, sprintf(format, args...))
	s.abort()
}

func (s *slogLogger) Errorf(format string, args ...any) {
	s.l.Error(sprintf(format, args...))
}

func (s *slogLogger) Warnf(format string, args ...any) {
	s.l.Warn(sprintf(format, args...))
}

func (s *slogLogger) Infof(format string, args ...any) {
	s.l.Info(sprintf(format, args...))
}

func (s *slogLogger) Debugf(format string, args ...any) {
	s.l.Debug(sprintf(format, args...))
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// DefaultLogger returns a Logger writing text-formatted records to
// stderr at INFO level and above.
func DefaultLogger() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)), nil)
}
