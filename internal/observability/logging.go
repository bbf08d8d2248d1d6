// Package observability provides repository logging, Prometheus metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
	"sort"
)

// Logger is the logger used by repositories. The server replaces it with the
// request-aware middleware logger at startup.
var Logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// RepoLoggingEnabled toggles repository-level logging.
var RepoLoggingEnabled = true

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	tableName string
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(tableName string) *RepoLogger {
	return &RepoLogger{tableName: tableName}
}

func (l *RepoLogger) attrs(operation string, fields map[string]any) []any {
	attrs := []any{
		slog.String("table", l.tableName),
		slog.String("operation", operation),
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}

// LogCreate logs a repository create operation.
func (l *RepoLogger) LogCreate(ctx context.Context, fields map[string]any) {
	if !RepoLoggingEnabled {
		return
	}
	Logger.InfoContext(ctx, "repository create", l.attrs("create", fields)...)
}

// LogUpdate logs a repository update operation.
func (l *RepoLogger) LogUpdate(ctx context.Context, fields map[string]any) {
	if !RepoLoggingEnabled {
		return
	}
	Logger.InfoContext(ctx, "repository update", l.attrs("update", fields)...)
}

// LogError logs a repository error.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	if !RepoLoggingEnabled {
		return
	}
	Logger.ErrorContext(ctx, "repository error",
		append(l.attrs(operation, nil), slog.String("error", err.Error()))...)
}
