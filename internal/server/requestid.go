package server

import (
	"context"

	"github.com/google/uuid"
)

// RequestID is a unique identifier for a request.
type RequestID string

// RequestIDHeader carries the request ID. An incoming value is kept,
// otherwise a new one is generated.
const RequestIDHeader = "X-Request-ID"

type contextKey int

var requestIDContextKey contextKey

func newRequestID() RequestID {
	return RequestID(uuid.NewString())
}

// RequestIDFromContext returns the RequestID stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) (RequestID, bool) {
	id, exists := ctx.Value(requestIDContextKey).(RequestID)
	return id, exists
}

func contextWithRequestID(ctx context.Context, requestID RequestID) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}
