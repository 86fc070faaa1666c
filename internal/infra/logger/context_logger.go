package logger

import (
	"context"
	"log/slog"
)

type ContextKey string

// Business context keys propagated through one question's lifecycle.
const (
	RequestIDKey   ContextKey = "qa.request.id"
	RetrievalIDKey ContextKey = "qa.retrieval.id"
	TickerKey      ContextKey = "qa.ticker"
)

// WithContext returns base enriched with any request-scoped values present
// in ctx.
func WithContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	var fields []any

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		fields = append(fields, string(RequestIDKey), requestID)
	}
	if retrievalID := ctx.Value(RetrievalIDKey); retrievalID != nil {
		fields = append(fields, string(RetrievalIDKey), retrievalID)
	}
	if ticker := ctx.Value(TickerKey); ticker != nil {
		fields = append(fields, string(TickerKey), ticker)
	}

	if len(fields) > 0 {
		return base.With(fields...)
	}
	return base
}

// WithRequestID adds the HTTP request ID to the context for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithRetrievalID adds the retrieval set ID to the context for log correlation.
func WithRetrievalID(ctx context.Context, retrievalID string) context.Context {
	return context.WithValue(ctx, RetrievalIDKey, retrievalID)
}

// WithTicker records the inferred ticker filter in the context.
func WithTicker(ctx context.Context, ticker string) context.Context {
	return context.WithValue(ctx, TickerKey, ticker)
}
