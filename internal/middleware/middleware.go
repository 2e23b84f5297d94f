package middleware

import (
	"context"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/logger"
	"bookshelf/internal/metrics"
)

// Command is a single user-facing operation: a shell mode or a CLI subcommand.
type Command func(ctx context.Context, args []string) error

type Middleware func(Command) Command

// Chain wraps c so that the first middleware runs outermost.
func Chain(c Command, mws ...Middleware) Command {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

// RequestID tags the context with a fresh id unless it already has one.
func RequestID(next Command) Command {
	return func(ctx context.Context, args []string) error {
		if logger.IDFrom(ctx) == "" {
			ctx = logger.WithNewID(ctx)
		}
		return next(ctx, args)
	}
}

// Status classifies a command result for metrics labels.
func Status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case catalog.IsUserError(err):
		return "rejected"
	default:
		return "error"
	}
}

// Instrument counts and times every call of op.
func Instrument(op string) Middleware {
	return func(next Command) Command {
		return func(ctx context.Context, args []string) error {
			start := time.Now()
			err := next(ctx, args)
			metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
			metrics.OperationsTotal.WithLabelValues(op, Status(err)).Inc()
			return err
		}
	}
}
