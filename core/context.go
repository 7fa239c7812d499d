package core

import (
	"context"

	"github.com/huangsam/leaderlens/schema"
)

// Context keys for comparison options
type contextKey string

const (
	runSourceKey      contextKey = "runSource"
	runIDKey          contextKey = "runID"
	suppressHeaderKey contextKey = "suppressHeader"
)

// WithRunSource records which surface triggered the comparison.
func WithRunSource(ctx context.Context, source schema.RunSource) context.Context {
	return context.WithValue(ctx, runSourceKey, source)
}

// runSourceFrom returns the run source from context, defaulting to the CLI.
func runSourceFrom(ctx context.Context) schema.RunSource {
	source, ok := ctx.Value(runSourceKey).(schema.RunSource)
	if !ok || source == "" {
		return schema.CLISource
	}
	return source
}

// withRunID stores the run log ID of the current comparison.
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the run log ID from context, if any.
func getRunID(ctx context.Context) (int64, bool) {
	runID, ok := ctx.Value(runIDKey).(int64)
	return runID, ok
}

// WithSuppressHeader disables the status lines written to stderr.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	suppress, ok := ctx.Value(suppressHeaderKey).(bool)
	return ok && suppress
}
