package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log record so warnings can be grouped and filtered.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to look at next.
	FieldErrorHint = "error_hint"
	// FieldDecisionType names the consensus decision a record describes (map, mode, slot).
	FieldDecisionType = "decision_type"
	// FieldMatchKey is the standardized key for match identifiers.
	FieldMatchKey = "match_key"
	// FieldRoundIndex is the standardized key for zero-based round indices.
	FieldRoundIndex = "round_index"
	// FieldTimestamp is the standardized key for stream timestamps (seconds).
	FieldTimestamp = "timestamp"
)

type contextKey string

const matchKeyContextKey contextKey = "match_key"

// WithMatchKey annotates ctx with the key of the match being processed.
func WithMatchKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, matchKeyContextKey, key)
}

// MatchKeyFromContext returns the match key if present.
func MatchKeyFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	key, ok := ctx.Value(matchKeyContextKey).(string)
	return key, ok && key != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if key, ok := MatchKeyFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldMatchKey, key))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
