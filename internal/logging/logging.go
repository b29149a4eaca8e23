package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lepinkainen/humanlog"
)

type contextKey string

const runIDKey contextKey = "runID"

// New returns a human-readable slog logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: level,
	})
	return slog.New(handler)
}

// ParseLevel accepts debug, info, warn or error (any case).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// NewRunContext tags ctx with a fresh run id, reusing one already present.
func NewRunContext(ctx context.Context) (context.Context, string) {
	if id := RunIDFrom(ctx); id != "" {
		return ctx, id
	}
	id := uuid.New().String()
	return ContextWithRunID(ctx, id), id
}

// ContextWithRunID returns a new context carrying the run id.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFrom retrieves the run id from the context.
func RunIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}

// FromContext decorates logger with the run id carried by ctx, if any.
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if id := RunIDFrom(ctx); id != "" {
		return logger.With("run_id", id)
	}
	return logger
}
