package refget

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/refget/checksum"
)

// Logger wraps slog.Logger with refget-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

type requestIDKey struct{}

// ContextWithRequestID returns a context carrying a request ID. Loggers
// add it to every operation logged with that context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID carried by ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithRequestID adds a request_id field to the logger.
func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("request_id", id),
	}
}

func (l *Logger) ctx(ctx context.Context) *slog.Logger {
	if id := RequestID(ctx); id != "" {
		return l.Logger.With("request_id", id)
	}
	return l.Logger
}

// LogSequence logs a sequence retrieval.
func (l *Logger) LogSequence(ctx context.Context, id, representation string, bases int64, duration time.Duration, err error) {
	if err != nil {
		l.ctx(ctx).ErrorContext(ctx, "sequence failed",
			"id", id,
			"representation", representation,
			"bases", bases,
			"error", err,
		)
		return
	}
	l.ctx(ctx).DebugContext(ctx, "sequence served",
		"id", id,
		"representation", representation,
		"bases", bases,
		"duration", duration,
	)
}

// LogMetadata logs a metadata lookup.
func (l *Logger) LogMetadata(ctx context.Context, id string, err error) {
	if err != nil {
		l.ctx(ctx).ErrorContext(ctx, "metadata failed",
			"id", id,
			"error", err,
		)
		return
	}
	l.ctx(ctx).DebugContext(ctx, "metadata served",
		"id", id,
	)
}

// LogIndexLoad logs the registration of one sequence file.
func (l *Logger) LogIndexLoad(ctx context.Context, file string, sequences int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index load failed",
			"file", file,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "index loaded",
		"file", file,
		"sequences", sequences,
	)
}

// LogDuplicateAlias warns about an alias claimed by two sequences.
func (l *Logger) LogDuplicateAlias(ctx context.Context, d checksum.Duplicate) {
	l.WarnContext(ctx, "duplicate alias ignored",
		"alias", d.Alias.Value,
		"algorithm", string(d.Alias.Algorithm),
		"kept", d.Kept,
		"dropped", d.Dropped,
	)
}

// LogVerify logs the digest verification of one sequence.
func (l *Logger) LogVerify(ctx context.Context, id string, bases int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "verification failed",
			"id", id,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "sequence verified",
		"id", id,
		"bases", bases,
	)
}
