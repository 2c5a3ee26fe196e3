// File: internal/logging/logger.go
package logging

import "context"

// Logger is the ambient logging abstraction used throughout the
// discovery pipeline. Field maps are structured key/value pairs; callers
// pass request-scoped identifiers (session_id, query, engine, ...)
// through ctx where convenient and through fields everywhere else.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, fields map[string]interface{})
}

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID returns a context carrying the given request/session id
// for loggers that extract it automatically (see ensureContextFields).
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestIDKey).(string)
	return v, ok
}
