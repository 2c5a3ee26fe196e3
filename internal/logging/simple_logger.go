// File: internal/logging/simple_logger.go
package logging

import (
	"context"
	"encoding/json"
	"log"
	"os"
)

// SimpleLogger implements Logger on top of the standard library's log
// package, encoding fields as JSON on each line.
type SimpleLogger struct {
	out *log.Logger
}

// NewSimpleLogger returns a Logger that writes to stderr.
func NewSimpleLogger() *SimpleLogger {
	return &SimpleLogger{out: log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)}
}

func (l *SimpleLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.write(ctx, "DEBUG", msg, fields)
}

func (l *SimpleLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.write(ctx, "INFO", msg, fields)
}

func (l *SimpleLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.write(ctx, "WARN", msg, fields)
}

func (l *SimpleLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.write(ctx, "ERROR", msg, fields)
}

func (l *SimpleLogger) write(ctx context.Context, level, msg string, fields map[string]interface{}) {
	l.out.Printf("[%s] %s %s", level, msg, l.encodeFields(l.ensureContextFields(ctx, fields)))
}

func (l *SimpleLogger) ensureContextFields(ctx context.Context, fields map[string]interface{}) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if ctx != nil {
		if reqID, ok := requestIDFromContext(ctx); ok {
			if _, exists := fields["request_id"]; !exists {
				fields["request_id"] = reqID
			}
		}
	}
	return fields
}

func (l *SimpleLogger) encodeFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return "{}"
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "{\"encode_error\":true}"
	}
	return string(b)
}
