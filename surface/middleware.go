package surface

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	domainerrors "github.com/reglet-dev/arith/domain/errors"
)

// Middleware wraps a Handler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next Handler) Handler

// PanicRecoveryMiddleware returns a middleware that turns a panicking
// handler into a PanicError instead of unwinding through the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, args Args) (result any, err error) {
			defer func() {
				if r := recover(); r != nil {
					result = nil
					err = &domainerrors.PanicError{
						Value:    r,
						Function: functionName(ctx),
						Stack:    debug.Stack(),
					}
				}
			}()
			return next(ctx, args)
		}
	}
}

// LoggingMiddleware returns a middleware that logs every call at debug
// level and every failure at warn level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, args Args) (any, error) {
			attrs := []any{"function", functionName(ctx), "args", args.Len()}
			if cc, ok := ctx.(CallContext); ok {
				attrs = append(attrs, "module", cc.ModuleName(), "call_id", cc.CallID())
			}

			start := time.Now()
			result, err := next(ctx, args)
			attrs = append(attrs, "duration", time.Since(start))

			if err != nil {
				logger.WarnContext(ctx, "call failed", append(attrs, "error", err)...)
				return nil, err
			}
			logger.DebugContext(ctx, "call completed", attrs...)
			return result, nil
		}
	}
}

func functionName(ctx context.Context) string {
	if cc, ok := ctx.(CallContext); ok {
		return cc.FunctionName()
	}
	return "unknown"
}
