package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Logger is the context-aware subset of slog the cufile wrapper logs through.
// Applications can supply their own implementation for tests or to route
// records into an existing pipeline.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New adapts l. Passing nil binds to slog.Default().
func New(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogAdapter{l: l}
}

type slogAdapter struct{ l *slog.Logger }

func (a slogAdapter) Debug(ctx context.Context, msg string, args ...any) {
	a.l.DebugContext(ctx, msg, args...)
}

func (a slogAdapter) Info(ctx context.Context, msg string, args ...any) {
	a.l.InfoContext(ctx, msg, args...)
}

func (a slogAdapter) Warn(ctx context.Context, msg string, args ...any) {
	a.l.WarnContext(ctx, msg, args...)
}

func (a slogAdapter) Error(ctx context.Context, msg string, args ...any) {
	a.l.ErrorContext(ctx, msg, args...)
}

func (a slogAdapter) With(args ...any) Logger { return slogAdapter{l: a.l.With(args...)} }

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }

// Identifier renders a native identifier as a hex attribute, the form used by
// libcufile's own logs.
func Identifier(key string, id uintptr) slog.Attr {
	return slog.String(key, "0x"+strconv.FormatUint(uint64(id), 16))
}

// ParseLevel accepts debug, info, warn and error, case-insensitively. The
// empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
