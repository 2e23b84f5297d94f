package middleware

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"bookshelf/internal/logger"
)

// RequestLogger logs every command; failures that are not user errors go
// out at the ERROR level.
func RequestLogger(log *logrus.Logger, op string) Middleware {
	return func(next Command) Command {
		return func(ctx context.Context, args []string) error {
			start := time.Now()

			err := next(ctx, args)

			entry := log.WithFields(logrus.Fields{
				"op":   op,
				"args": args,
				"took": time.Since(start),
			})
			if id := logger.IDFrom(ctx); id != "" {
				entry = entry.WithField("request_id", id)
			}
			switch Status(err) {
			case "ok":
				entry.Info("command")
			case "rejected":
				entry.WithError(err).Info("command.rejected")
			default:
				entry.WithError(err).Error("command.failed")
			}
			return err
		}
	}
}
