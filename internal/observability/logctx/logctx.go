// Package logctx carries the request or event scoped logger through a
// context so ledger code logs with the caller's request_id, trace ids and
// use case without threading a logger parameter.
package logctx

import (
	"context"

	"github.com/Zhima-Mochi/minishop-marketplace/internal/observability"
)

type scopeKey struct{}

// With returns ctx carrying logger. A nil logger leaves ctx unchanged.
func With(ctx context.Context, logger observability.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, scopeKey{}, logger)
}

// From returns the scoped logger, or nil when none was bound.
func From(ctx context.Context) observability.Logger {
	if ctx == nil {
		return nil
	}
	if logger, ok := ctx.Value(scopeKey{}).(observability.Logger); ok {
		return logger
	}
	return nil
}

func FromOr(ctx context.Context, fallback observability.Logger) observability.Logger {
	if logger := From(ctx); logger != nil {
		return logger
	}
	return fallback
}

// Extend binds the scoped logger (or fallback) plus fields onto ctx and
// returns both, so callees inherit the extra fields.
func Extend(ctx context.Context, fallback observability.Logger, fields ...observability.Field) (context.Context, observability.Logger) {
	logger := FromOr(ctx, fallback)
	if logger == nil {
		return ctx, nil
	}
	if len(fields) > 0 {
		logger = logger.With(fields...)
	}
	return With(ctx, logger), logger
}
