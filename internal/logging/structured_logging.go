// Package logging wraps log/slog with the attribute conventions shared by
// the server and the planner CLI.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type loggerKey struct{}

// Redacted replaces the value of any attribute that may carry a credential.
const Redacted = "[redacted]"

var secretKeys = map[string]bool{
	"authorization": true,
	"restapikey":    true,
	"api_key":       true,
	"key":           true,
}

func redactSecrets(_ []string, a slog.Attr) slog.Attr {
	if secretKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, Redacted)
	}
	return a
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{Level: level, ReplaceAttr: redactSecrets}
}

// NewStructuredLogger returns a JSON logger. Credential-bearing attributes
// are always redacted.
func NewStructuredLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, handlerOptions(level)))
}

// NewTextLogger is the key=value variant used by the command line tools.
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, handlerOptions(level)))
}

func ForComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("component", component))
}

// SegmentAttrs tags a log line with the plan position and endpoints of a
// segment.
func SegmentAttrs(index int, origin, destination string) []slog.Attr {
	return []slog.Attr{
		slog.Int("segment", index),
		slog.String("origin", origin),
		slog.String("destination", destination),
	}
}

func toArgs(attrs []slog.Attr, extra ...slog.Attr) []any {
	args := make([]any, 0, len(extra)+len(attrs))
	for _, a := range extra {
		args = append(args, a)
	}
	for _, a := range attrs {
		args = append(args, a)
	}
	return args
}

// LogError logs at error level. A nil err is allowed and omits the error
// attribute.
func LogError(logger *slog.Logger, message string, err error, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	var extra []slog.Attr
	if err != nil {
		extra = append(extra, slog.String("error", err.Error()))
	}
	logger.Error(message, toArgs(attrs, extra...)...)
}

// LogOperation logs a named event at info level, dropping zero durations.
func LogOperation(logger *slog.Logger, operation string, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	kept := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Key == "duration" && a.Value.Kind() == slog.KindDuration && a.Value.Duration() == 0 {
			continue
		}
		kept = append(kept, a)
	}
	logger.Info(operation, toArgs(kept)...)
}

func LogHTTPRequest(logger *slog.Logger, method, path string, status int, durationMs float64, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	logger.Info("http_request", toArgs(attrs,
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("duration_ms", durationMs),
	)...)
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request logger, or slog.Default when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
