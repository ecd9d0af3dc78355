package gemini

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps a tool handler with cross-cutting behavior (logging, recovery).
// name is the tool the handler belongs to.
type Middleware func(name string, next Handler) Handler

// WithLogging returns a middleware that logs start, end, duration, and errors.
// Errors are returned unchanged.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, args map[string]any) (any, error) {
			logger.Info("tool start", "tool", name)
			start := time.Now()
			res, err := next(ctx, args)
			dur := time.Since(start)
			if err != nil {
				logger.Error("tool error", "tool", name, "duration", dur, "error", err)
				return nil, err
			}
			logger.Info("tool end", "tool", name, "duration", dur)
			return res, nil
		}
	}
}

// WithRecovery returns a middleware that turns a handler panic into a *PanicError.
func WithRecovery() Middleware {
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, args map[string]any) (res any, err error) {
			defer func() {
				if p := recover(); p != nil {
					res = nil
					err = &PanicError{Tool: name, Value: p}
				}
			}()
			return next(ctx, args)
		}
	}
}

// Use stores the given middlewares and reapplies them from scratch to all registered tools (onion order:
// first middleware is outermost). Tools registered after Use also get these middlewares.
// Calling Use again replaces the chain; handlers are rewrapped from the raw Tool.Fn, never double-wrapped.
func (r *Registry) Use(middlewares ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = middlewares
	for _, e := range r.entries {
		e.handler = r.wrap(e.tool)
	}
}
