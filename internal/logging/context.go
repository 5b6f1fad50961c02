package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

//nolint:gochecknoglobals // Package-level context key is idiomatic
var loggerKey = contextKey{}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger attaches logger to ctx. A nil ctx is treated as Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// ForFile returns a context whose logger tags every entry with the file
// being highlighted and the scanner chosen for it.
func ForFile(ctx context.Context, path, lexerName string) (context.Context, *log.Logger) {
	logger := FromContext(ctx).With(FieldPath, path)
	if lexerName != "" {
		logger = logger.With(FieldLexer, lexerName)
	}
	return WithLogger(ctx, logger), logger
}
