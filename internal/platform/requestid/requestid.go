// Package requestid carries the per-request correlation ID through contexts
// and into log records.
package requestid

import (
	"context"
	"log/slog"
)

// LogKey is the attribute name used for the ID in log records.
const LogKey = "request_id"

type ctxKey struct{}

// NewContext returns a context that carries the given request ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or an empty string.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Logger returns base annotated with the request ID from ctx. Contexts
// without an ID get base back unchanged.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	id := FromContext(ctx)
	if id == "" {
		return base
	}
	return base.With(LogKey, id)
}
