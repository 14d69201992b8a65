package obs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID attaches a correlation id that Time and outbound adapters pick up.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the correlation id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of op when the returned func runs.
// Canceled operations log at debug; they are superseded work, not failures.
func Time(ctx context.Context, log *zap.Logger, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		if log == nil {
			return
		}

		fields := []zap.Field{
			zap.String("req_id", RequestID(ctx)),
			zap.String("op", name),
			zap.Int64("dur_ms", time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			fields = append(fields, zap.Error(*errp))
			if errors.Is(*errp, context.Canceled) {
				log.Debug("operation canceled", fields...)
				return
			}
			log.Warn("operation failed", fields...)
			return
		}
		log.Debug("operation done", fields...)
	}
}
