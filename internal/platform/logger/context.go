package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type to avoid collisions with other packages'
// context keys.
type contextKey struct{}

var loggerKey = contextKey{}

// WithLogger returns a context carrying the given logger. Middleware
// uses this to attach a request-scoped logger (with trace ID) that
// services and stores retrieve downstream.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger carried by the context, or the process
// default logger when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault returns the context's logger if one is set, or
// the provided fallback otherwise.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
